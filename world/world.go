package world

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/agentville/character"
	"github.com/hupe1980/agentville/clock"
	"github.com/hupe1980/agentville/conversation"
	"github.com/hupe1980/agentville/core"
	"github.com/hupe1980/agentville/environment"
	"github.com/hupe1980/agentville/gamemap"
	"github.com/hupe1980/agentville/logging"
	"github.com/hupe1980/agentville/memory"
	"github.com/hupe1980/agentville/plan"
)

// Config is the serializable portion of a world's construction parameters.
type Config struct {
	Name        string `json:"name" yaml:"name"`
	GridWidth   int    `json:"grid_width" yaml:"grid_width"`
	GridHeight  int    `json:"grid_height" yaml:"grid_height"`
	StartDay    int    `json:"start_day" yaml:"start_day"`
	StartHour   int    `json:"start_hour" yaml:"start_hour"`
	StartMinute int    `json:"start_minute" yaml:"start_minute"`
}

// AppearanceFactory produces an opaque visual descriptor for a character.
// The core stores the result and round-trips it through snapshots but never
// interprets it; the pixel layer owns its meaning.
type AppearanceFactory func(color string, characterID string) any

// CharacterTemplate seeds one character at world construction.
type CharacterTemplate struct {
	Identity character.Identity `json:"identity" yaml:"identity"`
	Position core.Point         `json:"position" yaml:"position"`
	Color    string             `json:"color,omitempty" yaml:"color"`
}

// TileTemplate seeds one rectangular terrain fill on top of the default
// all-grass grid. Fills apply in definition order, so later rectangles win.
type TileTemplate struct {
	Type string `json:"type" yaml:"type"`
	X    int    `json:"x" yaml:"x"`
	Y    int    `json:"y" yaml:"y"`
	W    int    `json:"w" yaml:"w"`
	H    int    `json:"h" yaml:"h"`
}

// ZoneTemplate seeds one named map zone.
type ZoneTemplate struct {
	Name string `json:"name" yaml:"name"`
	X    int    `json:"x" yaml:"x"`
	Y    int    `json:"y" yaml:"y"`
	W    int    `json:"w" yaml:"w"`
	H    int    `json:"h" yaml:"h"`
}

// Template is everything needed to build a world: static data plus the
// injected collaborators (routine source, appearance factory).
type Template struct {
	Config      Config              `json:"config" yaml:"config"`
	Characters  []CharacterTemplate `json:"characters" yaml:"characters"`
	Tiles       []TileTemplate      `json:"tiles,omitempty" yaml:"tiles"`
	Zones       []ZoneTemplate      `json:"zones,omitempty" yaml:"zones"`
	Environment *environment.Node   `json:"environment,omitempty" yaml:"environment"`

	// Routines overrides the built-in occupation routines. Not serialized.
	Routines plan.RoutineSource `json:"-" yaml:"-"`
	// Appearance produces opaque visual descriptors. Not serialized.
	Appearance AppearanceFactory `json:"-" yaml:"-"`
}

// World is the top-level orchestrator. It exclusively owns its bus, clock,
// registries, environment, map and diffusion log for its lifetime.
type World struct {
	ID string

	cfg       Config
	bus       *core.EventBus
	clock     *clock.Clock
	chars     *character.Manager
	convs     *conversation.Manager
	env       *environment.Environment
	grid      *gamemap.Grid
	diffusion *memory.DiffusionLog

	log       []string
	createdAt time.Time
	updatedAt time.Time

	logger logging.Logger
}

// Options configures world construction.
type Options struct {
	// ID overrides the generated world id (used when importing state).
	ID string
	// Logger receives world and bus logging. Defaults to a no-op logger.
	Logger logging.Logger
	// BusLogCapacity bounds the event ring log.
	BusLogCapacity int
}

// New builds a world from a template: grid with terrain fills and zones,
// environment tree, clock at the configured start time, characters with
// appearance descriptors and day-one plans, and the cross-cutting listeners.
func New(tmpl *Template, optFns ...func(o *Options)) *World {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}

	bus := core.NewEventBus(func(o *core.BusOptions) {
		o.Logger = opts.Logger
		o.LogCapacity = opts.BusLogCapacity
	})

	cfg := tmpl.Config
	if cfg.GridWidth <= 0 {
		cfg.GridWidth = 50
	}
	if cfg.GridHeight <= 0 {
		cfg.GridHeight = 50
	}
	if cfg.StartDay <= 0 {
		cfg.StartDay = 1
	}

	grid := gamemap.New(cfg.GridWidth, cfg.GridHeight)
	for _, tt := range tmpl.Tiles {
		t, ok := gamemap.ParseTile(tt.Type)
		if !ok {
			opts.Logger.Warn("unknown tile type in template, skipping", "type", tt.Type)
			continue
		}
		grid.FillRect(tt.X, tt.Y, tt.W, tt.H, t)
	}
	for _, z := range tmpl.Zones {
		grid.AddZone(gamemap.Zone{Name: z.Name, X: z.X, Y: z.Y, W: z.W, H: z.H})
	}

	simClock := clock.New(bus, func(o *clock.Options) {
		o.Start = clock.Time{Day: cfg.StartDay, Hour: cfg.StartHour, Minute: float64(cfg.StartMinute)}
	})

	planner := plan.NewPlanner(func(o *plan.PlannerOptions) {
		if tmpl.Routines != nil {
			o.Routines = tmpl.Routines
		}
	})

	now := time.Now().UTC()
	w := &World{
		ID:        id,
		cfg:       cfg,
		bus:       bus,
		clock:     simClock,
		chars:     character.NewManager(planner),
		convs:     conversation.NewManager(bus),
		env:       environment.New(tmpl.Environment),
		grid:      grid,
		diffusion: memory.NewDiffusionLog(),
		createdAt: now,
		updatedAt: now,
		logger:    opts.Logger,
	}

	for _, ct := range tmpl.Characters {
		c := w.newCharacter(ct.Identity, "")
		c.Position = ct.Position
		if tmpl.Appearance != nil {
			c.Appearance = tmpl.Appearance(ct.Color, c.ID)
		}
		w.chars.Add(c)
	}
	w.chars.InitializeDailyPlans(cfg.StartDay)

	w.wireListeners()
	return w
}

// newCharacter creates a character whose memory stream is bound to the
// world's diffusion log. An empty id generates a fresh one.
func (w *World) newCharacter(identity character.Identity, id string) *character.Character {
	if id == "" {
		id = uuid.NewString()
	}
	stream := memory.NewStream(id, func(o *memory.StreamOptions) {
		o.Diffusion = w.diffusion
	})
	return character.New(identity, w.bus, func(o *character.Options) {
		o.ID = id
		o.Stream = stream
	})
}

// wireListeners installs the cross-cutting policy.
func (w *World) wireListeners() {
	w.bus.Subscribe(core.EventTimeDayChanged, func(ev core.Event) {
		p, ok := ev.Payload.(clock.DayChangedPayload)
		if !ok {
			return
		}
		w.chars.InitializeDailyPlans(p.Time.Day)
		w.AppendLog(fmt.Sprintf("%s: a new day begins, plans refreshed", p.Time))
	})
	w.bus.Subscribe(core.EventTimeTick, func(ev core.Event) {
		p, ok := ev.Payload.(clock.TickPayload)
		if !ok {
			return
		}
		w.chars.UpdateActionsFromPlans(int(p.Time.MinuteOfDay()))
		w.updatedAt = time.Now().UTC()
	})
	w.bus.Subscribe(core.EventConversationStarted, func(ev core.Event) {
		if p, ok := ev.Payload.(conversation.StartedPayload); ok {
			w.AppendLog(fmt.Sprintf("%s: conversation started at %s between %v", w.clock.Time(), orOutside(p.Location), p.Participants))
		}
	})
	w.bus.Subscribe(core.EventConversationEnded, func(ev core.Event) {
		if p, ok := ev.Payload.(conversation.EndedPayload); ok {
			w.AppendLog(fmt.Sprintf("%s: conversation %s ended after %d messages", w.clock.Time(), p.ConversationID, p.MessageCount))
		}
	})
}

func orOutside(location string) string {
	if location == "" {
		return gamemap.OutsideLocation
	}
	return location
}

// Bus returns the world's event bus.
func (w *World) Bus() *core.EventBus { return w.bus }

// Clock returns the simulated clock.
func (w *World) Clock() *clock.Clock { return w.clock }

// Characters returns the character registry.
func (w *World) Characters() *character.Manager { return w.chars }

// Conversations returns the conversation registry.
func (w *World) Conversations() *conversation.Manager { return w.convs }

// Environment returns the location tree.
func (w *World) Environment() *environment.Environment { return w.env }

// Map returns the tile grid.
func (w *World) Map() *gamemap.Grid { return w.grid }

// Diffusion returns the world's diffusion log.
func (w *World) Diffusion() *memory.DiffusionLog { return w.diffusion }

// Config returns the world configuration.
func (w *World) Config() Config { return w.cfg }

// Start resumes the clock and publishes world.started. The periodic driver
// calling Tick is external.
func (w *World) Start() {
	w.clock.Resume()
	w.bus.Publish(core.EventWorldStarted, w.ID)
}

// Pause stops the clock.
func (w *World) Pause() { w.clock.Pause() }

// Resume restarts the clock.
func (w *World) Resume() { w.clock.Resume() }

// SetSpeed adjusts the clock multiplier.
func (w *World) SetSpeed(speed float64) { w.clock.SetSpeed(speed) }

// Tick advances the simulation one step. The tick listener refreshes every
// character's current action.
func (w *World) Tick() { w.clock.Tick() }

// AppendLog adds a line to the free-text simulation log and publishes
// world.log.
func (w *World) AppendLog(line string) {
	w.log = append(w.log, line)
	w.bus.Publish(core.EventWorldLog, line)
}

// Log returns a copy of the simulation log.
func (w *World) Log() []string {
	out := make([]string, len(w.log))
	copy(out, w.log)
	return out
}

// Serialize captures the full world state. It is a pure read, and the
// returned state is detached: further simulation never shows through it.
func (w *World) Serialize() *State {
	chars := w.chars.All()
	snapshots := make([]character.Snapshot, len(chars))
	for i, c := range chars {
		snapshots[i] = c.Snapshot()
	}
	convs := w.convs.All()
	conversations := make([]conversation.Conversation, len(convs))
	for i, c := range convs {
		conversations[i] = *c
	}
	return &State{
		ID:            w.ID,
		Config:        w.cfg,
		Time:          w.clock.Snapshot(),
		Characters:    snapshots,
		Conversations: conversations,
		Environment:   w.env.Root().Clone(),
		Diffusion:     w.diffusion.Entries(),
		Log:           w.Log(),
		CreatedAt:     w.createdAt,
		UpdatedAt:     w.updatedAt,
	}
}

// LoadState replaces subsystem state atomically per subsystem in fixed
// order: time, characters, conversations, environment, diffusion, log.
// Characters present in the state but unknown to the registry are created;
// registry characters absent from the state are removed. Publishes
// world.loaded when done.
func (w *World) LoadState(state *State) error {
	if state == nil {
		return fmt.Errorf("load state: nil state")
	}
	if state.ID != "" {
		w.ID = state.ID
	}
	w.cfg = state.Config
	w.clock.Restore(state.Time)

	seen := make(map[string]bool, len(state.Characters))
	for _, snap := range state.Characters {
		seen[snap.ID] = true
		c := w.chars.Get(snap.ID)
		if c == nil {
			c = w.newCharacter(snap.Identity, snap.ID)
			w.chars.Add(c)
		}
		c.RestoreSnapshot(snap)
	}
	for _, c := range w.chars.All() {
		if !seen[c.ID] {
			w.chars.Remove(c.ID)
		}
	}

	w.convs.Restore(state.Conversations)
	w.env.Restore(state.Environment)
	w.diffusion.Restore(state.Diffusion)
	w.log = append([]string(nil), state.Log...)
	w.createdAt = state.CreatedAt
	w.updatedAt = state.UpdatedAt

	w.logger.Info("world state loaded", "world_id", w.ID, "characters", len(state.Characters), "conversations", len(state.Conversations))
	w.bus.Publish(core.EventWorldLoaded, w.ID)
	return nil
}
