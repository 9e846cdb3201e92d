// Package agentville provides a high-level façade over the simulation core:
// a population of autonomous character agents sharing a spatial,
// time-advancing world, with per-agent memory streams, hierarchical daily
// plans and a turn-taking dialogue lifecycle. Most applications interact
// with this package by:
//  1. Creating a Manager via New() (optionally overriding the default
//     in-memory world store)
//  2. Registering one or more world templates
//  3. Creating worlds and driving them tick by tick
//
// The façade delegates orchestration to world.World while keeping setup and
// persistence ergonomics concise. All defaults are safe for local
// development and testing; production deployments typically supply a durable
// store implementation (store/sqlite, store/redis) and a structured logger.
package agentville

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hupe1980/agentville/logging"
	"github.com/hupe1980/agentville/store"
	"github.com/hupe1980/agentville/world"
)

var (
	// ErrTemplateNotFound is returned when creating a world from an
	// unregistered template name.
	ErrTemplateNotFound = fmt.Errorf("template not found")
	// ErrWorldNotFound is returned by operations on unknown live world ids.
	ErrWorldNotFound = fmt.Errorf("world not found")
)

// Options configures the Manager.
type Options struct {
	// Store persists world states. Defaults to an in-memory store.
	Store world.Store
	// Logger is propagated to every world built by this manager.
	Logger logging.Logger
}

// Manager registers templates, owns live worlds and round-trips their state
// through a pluggable storage contract.
type Manager struct {
	templates map[string]*world.Template
	worlds    map[string]*world.World
	store     world.Store
	logger    logging.Logger
}

// New creates a Manager.
func New(optFns ...func(o *Options)) *Manager {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Store == nil {
		opts.Store = store.NewInMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Manager{
		templates: make(map[string]*world.Template),
		worlds:    make(map[string]*world.World),
		store:     opts.Store,
		logger:    opts.Logger,
	}
}

// RegisterTemplate stores a template under a name, replacing any previous
// registration.
func (m *Manager) RegisterTemplate(name string, tmpl *world.Template) {
	m.templates[name] = tmpl
}

// CreateWorld builds a live world from a registered template.
func (m *Manager) CreateWorld(templateName string) (*world.World, error) {
	tmpl, ok := m.templates[templateName]
	if !ok {
		return nil, fmt.Errorf("create world from %q: %w", templateName, ErrTemplateNotFound)
	}
	w := world.New(tmpl, func(o *world.Options) {
		o.Logger = m.logger
	})
	m.worlds[w.ID] = w
	return w, nil
}

// GetWorld returns a live world or nil.
func (m *Manager) GetWorld(id string) *world.World { return m.worlds[id] }

// Worlds returns the live worlds keyed by id.
func (m *Manager) Worlds() map[string]*world.World {
	out := make(map[string]*world.World, len(m.worlds))
	for k, v := range m.worlds {
		out[k] = v
	}
	return out
}

// SaveWorld serializes a live world into the store.
func (m *Manager) SaveWorld(ctx context.Context, id string) error {
	w, ok := m.worlds[id]
	if !ok {
		return fmt.Errorf("save world %q: %w", id, ErrWorldNotFound)
	}
	return m.store.Save(ctx, id, w.Serialize())
}

// LoadWorld loads a stored state into the live world with the same id,
// creating it from the named template when it is not live yet.
func (m *Manager) LoadWorld(ctx context.Context, id, templateName string) (*world.World, error) {
	state, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	w, ok := m.worlds[id]
	if !ok {
		tmpl, found := m.templates[templateName]
		if !found {
			return nil, fmt.Errorf("load world %q from %q: %w", id, templateName, ErrTemplateNotFound)
		}
		w = world.New(tmpl, func(o *world.Options) {
			o.ID = id
			o.Logger = m.logger
		})
		m.worlds[id] = w
	}
	if err := w.LoadState(state); err != nil {
		return nil, err
	}
	return w, nil
}

// DeleteWorld removes the stored state and drops the live world if present.
func (m *Manager) DeleteWorld(ctx context.Context, id string) (bool, error) {
	delete(m.worlds, id)
	return m.store.Delete(ctx, id)
}

// ListWorlds returns stored world metadata.
func (m *Manager) ListWorlds(ctx context.Context) ([]world.Metadata, error) {
	return m.store.List(ctx)
}

// WorldExists reports whether a state is stored under the id.
func (m *Manager) WorldExists(ctx context.Context, id string) (bool, error) {
	return m.store.Exists(ctx, id)
}

// ExportState renders a live world's state as JSON.
func (m *Manager) ExportState(id string) ([]byte, error) {
	w, ok := m.worlds[id]
	if !ok {
		return nil, fmt.Errorf("export world %q: %w", id, ErrWorldNotFound)
	}
	return json.MarshalIndent(w.Serialize(), "", "  ")
}

// ImportState loads JSON produced by ExportState into the live world with
// the state's id, creating it from the named template when needed.
func (m *Manager) ImportState(data []byte, templateName string) (*world.World, error) {
	var state world.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("import state: %w", err)
	}
	w, ok := m.worlds[state.ID]
	if !ok {
		tmpl, found := m.templates[templateName]
		if !found {
			return nil, fmt.Errorf("import state from %q: %w", templateName, ErrTemplateNotFound)
		}
		w = world.New(tmpl, func(o *world.Options) {
			o.ID = state.ID
			o.Logger = m.logger
		})
		m.worlds[state.ID] = w
	}
	if err := w.LoadState(&state); err != nil {
		return nil, err
	}
	return w, nil
}
