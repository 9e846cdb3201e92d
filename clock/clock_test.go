package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentville/core"
)

func newRunningClock(t *testing.T, bus *core.EventBus, start Time, speed float64) *Clock {
	t.Helper()
	c := New(bus, func(o *Options) {
		o.Start = start
		o.Speed = speed
	})
	c.Resume()
	return c
}

func TestClock_StartsPaused(t *testing.T) {
	bus := core.NewEventBus()
	c := New(bus)

	assert.False(t, c.Running())
	before := c.Time()
	c.Tick()
	assert.Equal(t, before, c.Time(), "a paused clock must ignore ticks")
}

func TestClock_TickAdvancesBySpeed(t *testing.T) {
	bus := core.NewEventBus()
	c := newRunningClock(t, bus, Time{Day: 1, Hour: 8}, 1)

	var ticks []TickPayload
	bus.Subscribe(core.EventTimeTick, func(ev core.Event) {
		ticks = append(ticks, ev.Payload.(TickPayload))
	})

	c.Tick()
	c.Tick()

	assert.Equal(t, Time{Day: 1, Hour: 8, Minute: 2}, c.Time())
	require.Len(t, ticks, 2)
	assert.Equal(t, float64(1), ticks[0].Delta)
	assert.Equal(t, Time{Day: 1, Hour: 8, Minute: 2}, ticks[1].Time)
}

func TestClock_MidnightBoundary(t *testing.T) {
	bus := core.NewEventBus()
	c := newRunningClock(t, bus, Time{Day: 1, Hour: 23, Minute: 31}, 1)

	var hourChanges, dayChanges int
	bus.Subscribe(core.EventTimeHourChanged, func(core.Event) { hourChanges++ })
	bus.Subscribe(core.EventTimeDayChanged, func(core.Event) { dayChanges++ })

	for i := 0; i < 60; i++ {
		c.Tick()
	}

	assert.Equal(t, Time{Day: 2, Hour: 0, Minute: 31}, c.Time())
	assert.Equal(t, 1, hourChanges)
	assert.Equal(t, 1, dayChanges)
}

func TestClock_MultiHourJump(t *testing.T) {
	bus := core.NewEventBus()
	c := newRunningClock(t, bus, Time{Day: 1, Hour: 10, Minute: 30}, 60)

	var hours []Time
	bus.Subscribe(core.EventTimeHourChanged, func(ev core.Event) {
		hours = append(hours, ev.Payload.(HourChangedPayload).Time)
	})

	c.Tick() // 10:30 -> 11:30
	c.Tick() // 11:30 -> 12:30

	require.Len(t, hours, 2)
	assert.Equal(t, 11, hours[0].Hour)
	assert.Equal(t, 12, hours[1].Hour)
	assert.Equal(t, Time{Day: 1, Hour: 12, Minute: 30}, c.Time())
}

func TestClock_FractionalSpeedAccumulates(t *testing.T) {
	bus := core.NewEventBus()
	c := newRunningClock(t, bus, Time{Day: 1}, 0.5)

	c.Tick()
	c.Tick()
	c.Tick()

	assert.InDelta(t, 1.5, c.Time().Minute, 1e-9)
}

func TestClock_SpeedClamping(t *testing.T) {
	bus := core.NewEventBus()
	c := New(bus)

	c.SetSpeed(0.01)
	assert.Equal(t, MinSpeed, c.Speed())

	c.SetSpeed(500)
	assert.Equal(t, float64(MaxSpeed), c.Speed())
}

func TestClock_SetSpeedPublishesOnlyOnChange(t *testing.T) {
	bus := core.NewEventBus()
	c := New(bus)

	var changes []float64
	bus.Subscribe(core.EventTimeSpeedChanged, func(ev core.Event) {
		changes = append(changes, ev.Payload.(SpeedChangedPayload).Speed)
	})

	c.SetSpeed(15)
	c.SetSpeed(15)
	c.SetSpeed(100) // clamps to MaxSpeed
	c.SetSpeed(70)  // also MaxSpeed, no event

	assert.Equal(t, []float64{15, MaxSpeed}, changes)
}

func TestClock_PauseResumeIdempotent(t *testing.T) {
	bus := core.NewEventBus()
	c := New(bus)

	var paused, resumed int
	bus.Subscribe(core.EventTimePaused, func(core.Event) { paused++ })
	bus.Subscribe(core.EventTimeResumed, func(core.Event) { resumed++ })

	c.Resume()
	c.Resume()
	c.Pause()
	c.Pause()

	assert.Equal(t, 1, resumed)
	assert.Equal(t, 1, paused)
}

func TestClock_SnapshotRestore(t *testing.T) {
	bus := core.NewEventBus()
	c := newRunningClock(t, bus, Time{Day: 3, Hour: 14, Minute: 7}, 2)

	snap := c.Snapshot()
	c.Tick()
	c.Restore(snap)

	assert.Equal(t, Time{Day: 3, Hour: 14, Minute: 7}, c.Time())
	assert.True(t, c.Running(), "restore must not touch the running state")
}

func TestTime_MinuteOfDay(t *testing.T) {
	assert.Equal(t, float64(511), Time{Hour: 8, Minute: 31}.MinuteOfDay())
	assert.Equal(t, float64(0), Time{}.MinuteOfDay())
}

func TestTime_String(t *testing.T) {
	assert.Equal(t, "day 2, 08:05", Time{Day: 2, Hour: 8, Minute: 5.7}.String())
}

func TestTime_Describe(t *testing.T) {
	assert.Equal(t, "late night", Time{Hour: 2}.Describe())
	assert.Equal(t, "early morning", Time{Hour: 6}.Describe())
	assert.Equal(t, "morning", Time{Hour: 9}.Describe())
	assert.Equal(t, "midday", Time{Hour: 13}.Describe())
	assert.Equal(t, "afternoon", Time{Hour: 16}.Describe())
	assert.Equal(t, "evening", Time{Hour: 20}.Describe())
	assert.Equal(t, "night", Time{Hour: 23}.Describe())
}
