package character

import (
	"github.com/hupe1980/agentville/core"
	"github.com/hupe1980/agentville/plan"
)

// Manager is the id-keyed registry and query layer over characters. It keeps
// insertion order for deterministic iteration and offers the batch
// operations the world drives on day rollover and on every tick.
type Manager struct {
	byID    map[string]*Character
	order   []string
	planner *plan.Planner
}

// NewManager creates an empty registry using planner for batch plan
// operations.
func NewManager(planner *plan.Planner) *Manager {
	if planner == nil {
		planner = plan.NewPlanner()
	}
	return &Manager{byID: make(map[string]*Character), planner: planner}
}

// Planner returns the shared planner.
func (m *Manager) Planner() *plan.Planner { return m.planner }

// Add registers a character. Re-adding an existing id replaces the entry in
// place without changing its order.
func (m *Manager) Add(c *Character) {
	if _, exists := m.byID[c.ID]; !exists {
		m.order = append(m.order, c.ID)
	}
	m.byID[c.ID] = c
}

// Get returns the character or nil for unknown ids.
func (m *Manager) Get(id string) *Character { return m.byID[id] }

// Remove deletes a character from the registry, reporting whether it
// existed. Memories other characters hold about it remain valid: they
// reference by id only.
func (m *Manager) Remove(id string) bool {
	if _, exists := m.byID[id]; !exists {
		return false
	}
	delete(m.byID, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns the characters in insertion order.
func (m *Manager) All() []*Character {
	out := make([]*Character, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out
}

// Len returns the number of registered characters.
func (m *Manager) Len() int { return len(m.byID) }

// Nearby returns all other characters within the Chebyshev radius of the
// given character, in insertion order. Unknown ids yield an empty slice.
func (m *Manager) Nearby(id string, radius int) []*Character {
	c := m.byID[id]
	if c == nil {
		return nil
	}
	var near []*Character
	for _, other := range m.All() {
		if other.ID == id {
			continue
		}
		if c.Position.ChebyshevDistance(other.Position) <= radius {
			near = append(near, other)
		}
	}
	return near
}

// IsPositionOccupied reports whether any character other than excludeID
// stands on p.
func (m *Manager) IsPositionOccupied(p core.Point, excludeID string) bool {
	for _, c := range m.byID {
		if c.ID != excludeID && c.Position == p {
			return true
		}
	}
	return false
}

// OccupiedPositions returns the positions of all characters except
// excludeID, in the shape FindPath expects for its exclusion set.
func (m *Manager) OccupiedPositions(excludeID string) map[core.Point]bool {
	occupied := make(map[core.Point]bool, len(m.byID))
	for _, c := range m.byID {
		if c.ID != excludeID {
			occupied[c.Position] = true
		}
	}
	return occupied
}

// InitializeDailyPlans builds a fresh daily plan for every character. The
// world calls this on day rollover.
func (m *Manager) InitializeDailyPlans(day int) {
	for _, c := range m.All() {
		c.DailyPlan = m.planner.InitializeDailyPlan(c.Occupation, day)
	}
}

// UpdateActionsFromPlans refreshes every character's current action from the
// plan active at the given minute of day. The world calls this on every
// tick. Characters with no covering plan become idle.
func (m *Manager) UpdateActionsFromPlans(minuteOfDay int) {
	for _, c := range m.All() {
		current := m.planner.CurrentPlan(c.DailyPlan, minuteOfDay)
		if current == nil {
			c.SetAction("", "")
			continue
		}
		c.SetAction(current.Description, current.ID)
	}
}
