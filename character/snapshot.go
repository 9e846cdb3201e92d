package character

import (
	"github.com/hupe1980/agentville/core"
	"github.com/hupe1980/agentville/memory"
	"github.com/hupe1980/agentville/plan"
)

// Snapshot is the plain serializable form of a Character. Every field of the
// live character round-trips through it losslessly.
type Snapshot struct {
	ID            string                   `json:"id"`
	Identity      Identity                 `json:"identity"`
	Position      core.Point               `json:"position"`
	Facing        core.Direction           `json:"facing"`
	Moving        bool                     `json:"moving"`
	Occupation    plan.Occupation          `json:"occupation"`
	DailyPlan     *plan.DailyPlan          `json:"daily_plan,omitempty"`
	Relationships map[string]*Relationship `json:"relationships,omitempty"`
	Commands      []*Command               `json:"commands,omitempty"`
	CurrentAction string                   `json:"current_action,omitempty"`
	Appearance    any                      `json:"appearance,omitempty"`
	Memory        memory.StreamSnapshot    `json:"memory"`
}

// Snapshot captures the character for persistence. The plan, relationships
// and commands are deep-copied, so a snapshot held across further simulation
// never changes underneath its holder.
func (c *Character) Snapshot() Snapshot {
	return Snapshot{
		ID:            c.ID,
		Identity:      c.Identity,
		Position:      c.Position,
		Facing:        c.Facing,
		Moving:        c.Moving,
		Occupation:    c.Occupation,
		DailyPlan:     c.DailyPlan.Clone(),
		Relationships: cloneRelationships(c.Relationships),
		Commands:      cloneCommands(c.Commands),
		CurrentAction: c.CurrentAction,
		Appearance:    c.Appearance,
		Memory:        c.stream.Snapshot(),
	}
}

// RestoreSnapshot replaces the character's mutable state from a snapshot.
// The id, identity and bus wiring are preserved from construction. The
// character takes its own copies, so the snapshot stays reusable.
func (c *Character) RestoreSnapshot(snap Snapshot) {
	c.Identity = snap.Identity
	c.Position = snap.Position
	c.Facing = snap.Facing
	c.Moving = snap.Moving
	c.Occupation = snap.Occupation
	c.DailyPlan = snap.DailyPlan.Clone()
	c.Relationships = cloneRelationships(snap.Relationships)
	if c.Relationships == nil {
		c.Relationships = make(map[string]*Relationship)
	}
	c.Commands = cloneCommands(snap.Commands)
	c.CurrentAction = snap.CurrentAction
	c.Appearance = snap.Appearance
	c.stream.Restore(snap.Memory)
}

func cloneRelationships(in map[string]*Relationship) map[string]*Relationship {
	if in == nil {
		return nil
	}
	out := make(map[string]*Relationship, len(in))
	for id, r := range in {
		cp := *r
		out[id] = &cp
	}
	return out
}

func cloneCommands(in []*Command) []*Command {
	if in == nil {
		return nil
	}
	out := make([]*Command, len(in))
	for i, cmd := range in {
		cp := *cmd
		out[i] = &cp
	}
	return out
}
