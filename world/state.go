package world

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/agentville/character"
	"github.com/hupe1980/agentville/clock"
	"github.com/hupe1980/agentville/conversation"
	"github.com/hupe1980/agentville/environment"
	"github.com/hupe1980/agentville/memory"
)

var (
	// ErrNotFound is returned by Store.Load when no state exists for the id.
	ErrNotFound = fmt.Errorf("world state not found")
)

// State is the complete serializable snapshot of a simulation instance:
// a plain nested record with no pointers back into live subsystems. Every
// field round-trips losslessly through Serialize/LoadState.
type State struct {
	ID            string                      `json:"id"`
	Config        Config                      `json:"config"`
	Time          clock.Time                  `json:"time"`
	Characters    []character.Snapshot        `json:"characters"`
	Conversations []conversation.Conversation `json:"conversations"`
	Environment   *environment.Node           `json:"environment,omitempty"`
	Diffusion     []memory.DiffusionEntry     `json:"diffusion,omitempty"`
	Log           []string                    `json:"log,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

// Metadata is the listing entry a Store returns without loading full states.
type Metadata struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists world states keyed by opaque world id. Implementations
// should be thread-safe. Unlike the in-simulation contract violations that
// resolve as no-ops, storage failures surface loudly: they risk real data
// loss. Load returns ErrNotFound (wrapped or bare) when the id is unknown.
type Store interface {
	Save(ctx context.Context, id string, state *State) error
	Load(ctx context.Context, id string) (*State, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]Metadata, error)
	Exists(ctx context.Context, id string) (bool, error)
}
