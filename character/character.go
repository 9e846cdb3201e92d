package character

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/agentville/core"
	"github.com/hupe1980/agentville/memory"
	"github.com/hupe1980/agentville/plan"
)

// Identity is the static description of a character, loaded from templates.
type Identity struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Occupation  string `json:"occupation"`
	Personality string `json:"personality"`
	Lifestyle   string `json:"lifestyle"`
}

// Relationship captures how a character feels about another, keyed by the
// other character's id in Character.Relationships.
type Relationship struct {
	Sentiment       float64   `json:"sentiment"` // [-1, 1]
	Description     string    `json:"description"`
	LastInteraction time.Time `json:"last_interaction"`
}

// Command is a free-text "inner voice" instruction issued to a character by
// an external controller. Interpretation is filled in once an external
// decision service has processed it.
type Command struct {
	ID             string    `json:"id"`
	Text           string    `json:"text"`
	IssuedAt       time.Time `json:"issued_at"`
	Interpretation string    `json:"interpretation,omitempty"`
	Processed      bool      `json:"processed"`
}

// MovedPayload accompanies character.moved events.
type MovedPayload struct {
	CharacterID string         `json:"character_id"`
	Position    core.Point     `json:"position"`
	Facing      core.Direction `json:"facing"`
}

// ActionChangedPayload accompanies character.action_changed events.
type ActionChangedPayload struct {
	CharacterID string `json:"character_id"`
	Action      string `json:"action"`
	PlanID      string `json:"plan_id,omitempty"`
}

// MemorySharedPayload accompanies memory.diffused events.
type MemorySharedPayload struct {
	MemoryID string `json:"memory_id"`
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
	Context  string `json:"context,omitempty"`
}

// CommandPayload accompanies character.command events.
type CommandPayload struct {
	CharacterID string `json:"character_id"`
	CommandID   string `json:"command_id"`
	Text        string `json:"text"`
}

// Character is one simulated agent. It exclusively owns its memory stream
// and daily plan; everything else references it by id. Not safe for
// concurrent mutation (see the caller discipline in package world).
type Character struct {
	ID       string
	Identity Identity

	Position core.Point
	Facing   core.Direction
	Moving   bool

	Occupation    plan.Occupation
	DailyPlan     *plan.DailyPlan
	Relationships map[string]*Relationship
	Commands      []*Command
	CurrentAction string

	// Appearance is the opaque descriptor produced by the world's appearance
	// factory. The core stores it and round-trips it but never interprets it.
	Appearance any

	stream *memory.Stream
	bus    *core.EventBus
}

// Options configures a Character.
type Options struct {
	// ID overrides the generated character id (used when restoring state).
	ID string
	// Stream overrides the default memory stream (used to inject scorers or
	// the world's diffusion log).
	Stream *memory.Stream
}

// New creates a character with the given identity publishing on bus. The
// occupation tag is resolved from the identity's free-text occupation once,
// here.
func New(identity Identity, bus *core.EventBus, optFns ...func(o *Options)) *Character {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	stream := opts.Stream
	if stream == nil {
		stream = memory.NewStream(id)
	}
	return &Character{
		ID:            id,
		Identity:      identity,
		Facing:        core.DirectionDown,
		Occupation:    plan.ParseOccupation(identity.Occupation),
		Relationships: make(map[string]*Relationship),
		stream:        stream,
		bus:           bus,
	}
}

// Stream returns the character's memory stream.
func (c *Character) Stream() *memory.Stream { return c.stream }

// Move shifts the character one tile in the given direction, clamped to the
// grid bounds (width x height). Facing updates even when the move is blocked
// at an edge, so a character can turn in place. Publishes character.moved.
func (c *Character) Move(dir core.Direction, width, height int) {
	c.Facing = dir
	next := c.Position.Add(dir.Delta())
	if next.X < 0 || next.X >= width || next.Y < 0 || next.Y >= height {
		next = c.Position
	}
	c.setPosition(next)
}

// SetPosition places the character at p. Always publishes character.moved,
// even for a zero-distance move, so observers can re-render.
func (c *Character) SetPosition(p core.Point) {
	c.setPosition(p)
}

func (c *Character) setPosition(p core.Point) {
	c.Position = p
	if c.bus != nil {
		c.bus.Publish(core.EventCharacterMoved, MovedPayload{CharacterID: c.ID, Position: p, Facing: c.Facing})
	}
}

// Remember appends a memory to the character's stream and publishes
// memory.added (and memory.reflection when the accumulated importance
// crosses the threshold).
func (c *Character) Remember(m *memory.Memory) *memory.Memory {
	stored := c.stream.Add(m)
	if c.bus != nil {
		c.bus.Publish(core.EventMemoryAdded, stored)
		if c.stream.ShouldReflect() {
			c.bus.Publish(core.EventMemoryReflection, c.ID)
		}
	}
	return stored
}

// ShareMemory records that the character passed one of its memories on to the
// target and publishes memory.diffused. Sharing the same memory with the same
// target twice is a no-op returning false.
func (c *Character) ShareMemory(m *memory.Memory, targetID, context string) bool {
	if !c.stream.RecordDiffusion(m, c.ID, targetID, context) {
		return false
	}
	if c.bus != nil {
		c.bus.Publish(core.EventMemoryDiffused, MemorySharedPayload{MemoryID: m.ID, SourceID: c.ID, TargetID: targetID, Context: context})
	}
	return true
}

// Observe is a convenience for observation memories.
func (c *Character) Observe(text string, importance int) *memory.Memory {
	return c.Remember(&memory.Memory{Text: text, Importance: importance, Type: memory.TypeObservation})
}

// UpdateRelationship adjusts sentiment toward the other character, clamped
// to [-1, 1], replaces the description when non-empty, and stamps the
// interaction time. Creates the relationship on first contact.
func (c *Character) UpdateRelationship(otherID string, sentimentDelta float64, description string) *Relationship {
	r, ok := c.Relationships[otherID]
	if !ok {
		r = &Relationship{}
		c.Relationships[otherID] = r
	}
	r.Sentiment += sentimentDelta
	if r.Sentiment > 1 {
		r.Sentiment = 1
	}
	if r.Sentiment < -1 {
		r.Sentiment = -1
	}
	if description != "" {
		r.Description = description
	}
	r.LastInteraction = time.Now().UTC()
	return r
}

// AddCommand queues an inner-voice command and publishes character.command.
func (c *Character) AddCommand(text string) *Command {
	cmd := &Command{ID: uuid.NewString(), Text: text, IssuedAt: time.Now().UTC()}
	c.Commands = append(c.Commands, cmd)
	if c.bus != nil {
		c.bus.Publish(core.EventCharacterCommand, CommandPayload{CharacterID: c.ID, CommandID: cmd.ID, Text: text})
	}
	return cmd
}

// ResolveCommand stores the interpretation an external decision service
// produced for a pending command and marks it processed. Unknown ids are a
// no-op returning nil.
func (c *Character) ResolveCommand(commandID, interpretation string) *Command {
	for _, cmd := range c.Commands {
		if cmd.ID == commandID {
			cmd.Interpretation = interpretation
			cmd.Processed = true
			return cmd
		}
	}
	return nil
}

// PendingCommands returns the unprocessed commands in issue order.
func (c *Character) PendingCommands() []*Command {
	var pending []*Command
	for _, cmd := range c.Commands {
		if !cmd.Processed {
			pending = append(pending, cmd)
		}
	}
	return pending
}

// SetAction updates the character's current action description, publishing
// character.action_changed only on an actual change.
func (c *Character) SetAction(action, planID string) {
	if action == c.CurrentAction {
		return
	}
	c.CurrentAction = action
	if c.bus != nil {
		c.bus.Publish(core.EventCharacterActionChanged, ActionChangedPayload{CharacterID: c.ID, Action: action, PlanID: planID})
	}
}

// Summary renders a compact character card for external prompt builders.
// Data only; no prompt wording beyond labels.
func (c *Character) Summary() string {
	return fmt.Sprintf("%s, %d, %s. Personality: %s. Lifestyle: %s. Currently: %s.",
		c.Identity.Name, c.Identity.Age, c.Identity.Occupation,
		c.Identity.Personality, c.Identity.Lifestyle, c.currentActionOrIdle())
}

func (c *Character) currentActionOrIdle() string {
	if c.CurrentAction == "" {
		return "idle"
	}
	return c.CurrentAction
}
