package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentville/core"
	"github.com/hupe1980/agentville/plan"
)

func addCharacter(m *Manager, bus *core.EventBus, name, occupation string, pos core.Point) *Character {
	c := New(Identity{Name: name, Occupation: occupation}, bus)
	c.Position = pos
	m.Add(c)
	return c
}

func TestManager_AddGetRemove(t *testing.T) {
	bus := core.NewEventBus()
	m := NewManager(nil)

	a := addCharacter(m, bus, "Ada", "researcher", core.Point{X: 1, Y: 1})
	b := addCharacter(m, bus, "Bert", "shopkeeper", core.Point{X: 2, Y: 1})

	assert.Equal(t, 2, m.Len())
	assert.Same(t, a, m.Get(a.ID))
	assert.Nil(t, m.Get("unknown"))

	assert.True(t, m.Remove(a.ID))
	assert.False(t, m.Remove(a.ID))
	assert.Equal(t, 1, m.Len())
	assert.Same(t, b, m.All()[0])
}

func TestManager_AllPreservesInsertionOrder(t *testing.T) {
	bus := core.NewEventBus()
	m := NewManager(nil)

	a := addCharacter(m, bus, "Ada", "researcher", core.Point{})
	b := addCharacter(m, bus, "Bert", "shopkeeper", core.Point{})
	c := addCharacter(m, bus, "Cleo", "farmer", core.Point{})

	all := m.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	// Re-adding keeps the original slot.
	m.Add(a)
	assert.Equal(t, a.ID, m.All()[0].ID)
	assert.Equal(t, 3, m.Len())
}

func TestManager_Nearby(t *testing.T) {
	bus := core.NewEventBus()
	m := NewManager(nil)

	a := addCharacter(m, bus, "Ada", "researcher", core.Point{X: 5, Y: 5})
	b := addCharacter(m, bus, "Bert", "shopkeeper", core.Point{X: 7, Y: 7}) // Chebyshev 2
	addCharacter(m, bus, "Cleo", "farmer", core.Point{X: 9, Y: 5})          // Chebyshev 4

	near := m.Nearby(a.ID, 2)
	require.Len(t, near, 1)
	assert.Equal(t, b.ID, near[0].ID)

	assert.Len(t, m.Nearby(a.ID, 4), 2)
	assert.Empty(t, m.Nearby(a.ID, 1))
	assert.Nil(t, m.Nearby("unknown", 3))
}

func TestManager_Occupancy(t *testing.T) {
	bus := core.NewEventBus()
	m := NewManager(nil)

	a := addCharacter(m, bus, "Ada", "researcher", core.Point{X: 1, Y: 1})
	b := addCharacter(m, bus, "Bert", "shopkeeper", core.Point{X: 2, Y: 1})

	assert.True(t, m.IsPositionOccupied(core.Point{X: 2, Y: 1}, a.ID))
	assert.False(t, m.IsPositionOccupied(core.Point{X: 2, Y: 1}, b.ID), "a character does not block itself")
	assert.False(t, m.IsPositionOccupied(core.Point{X: 3, Y: 3}, ""))

	occupied := m.OccupiedPositions(a.ID)
	assert.Equal(t, map[core.Point]bool{{X: 2, Y: 1}: true}, occupied)
}

func TestManager_DailyPlanBatch(t *testing.T) {
	bus := core.NewEventBus()
	m := NewManager(plan.NewPlanner())

	a := addCharacter(m, bus, "Ada", "researcher", core.Point{})
	b := addCharacter(m, bus, "Bert", "shopkeeper", core.Point{})

	m.InitializeDailyPlans(3)
	require.NotNil(t, a.DailyPlan)
	require.NotNil(t, b.DailyPlan)
	assert.Equal(t, 3, a.DailyPlan.Day)
	assert.NotEmpty(t, a.DailyPlan.Hourly)

	// 08:31 is mid-morning work for the researcher.
	m.UpdateActionsFromPlans(8*60 + 31)
	assert.Equal(t, "Research", a.CurrentAction)
	assert.Equal(t, "Serve customers", b.CurrentAction)

	// Nobody is scheduled at midnight; both go idle.
	m.UpdateActionsFromPlans(0)
	assert.Empty(t, a.CurrentAction)
	assert.Empty(t, b.CurrentAction)
}
