package clock

import (
	"fmt"

	"github.com/hupe1980/agentville/core"
)

// Speed multiplier bounds. One tick at speed 1 advances one simulated
// minute; speed 60 advances a full hour per tick.
const (
	MinSpeed = 0.1
	MaxSpeed = 60
)

const minutesPerHour = 60

// Time is the raw simulated time value. Minute is fractional so sub-minute
// speeds accumulate without loss. This is the only clock state that is
// serialized.
type Time struct {
	Day    int     `json:"day"`
	Hour   int     `json:"hour"`
	Minute float64 `json:"minute"`
}

// MinuteOfDay returns the minute within the current day, [0, 1440).
func (t Time) MinuteOfDay() float64 {
	return float64(t.Hour)*minutesPerHour + t.Minute
}

// String renders the time as "day 3, 08:31".
func (t Time) String() string {
	return fmt.Sprintf("day %d, %02d:%02d", t.Day, t.Hour, int(t.Minute))
}

// Describe returns a coarse time-of-day phrase ("early morning", "evening")
// for external prompt builders. The core attaches no behavior to it.
func (t Time) Describe() string {
	switch {
	case t.Hour < 5:
		return "late night"
	case t.Hour < 8:
		return "early morning"
	case t.Hour < 12:
		return "morning"
	case t.Hour < 14:
		return "midday"
	case t.Hour < 18:
		return "afternoon"
	case t.Hour < 22:
		return "evening"
	default:
		return "night"
	}
}

// TickPayload accompanies every time.tick event.
type TickPayload struct {
	Time  Time    `json:"time"`
	Delta float64 `json:"delta"` // applied simulated minutes
}

// HourChangedPayload accompanies time.hour_changed events, one per hour
// boundary crossed.
type HourChangedPayload struct {
	Time Time `json:"time"`
}

// DayChangedPayload accompanies time.day_changed events, one per day
// boundary crossed.
type DayChangedPayload struct {
	Time Time `json:"time"`
}

// SpeedChangedPayload accompanies time.speed_changed events.
type SpeedChangedPayload struct {
	Speed float64 `json:"speed"`
}

// Clock is the simulated time source. It is a pure state machine: Tick is
// safe to drive from a timer or manually in tests, and pausing only stops
// the owner from calling Tick; it never cancels anything in flight.
type Clock struct {
	bus     *core.EventBus
	time    Time
	speed   float64
	running bool
}

// Options configures a Clock.
type Options struct {
	// Start is the initial simulated time. Defaults to day 1, 00:00.
	Start Time
	// Speed is the initial multiplier, clamped to [MinSpeed, MaxSpeed].
	Speed float64
}

// New creates a paused clock publishing on bus.
func New(bus *core.EventBus, optFns ...func(o *Options)) *Clock {
	opts := Options{Start: Time{Day: 1}, Speed: 1}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Clock{bus: bus, time: opts.Start, speed: clampSpeed(opts.Speed)}
}

func clampSpeed(s float64) float64 {
	if s < MinSpeed {
		return MinSpeed
	}
	if s > MaxSpeed {
		return MaxSpeed
	}
	return s
}

// Time returns the current simulated time.
func (c *Clock) Time() Time { return c.time }

// Speed returns the current multiplier.
func (c *Clock) Speed() float64 { return c.speed }

// Running reports whether the clock is unpaused.
func (c *Clock) Running() bool { return c.running }

// SetSpeed clamps and applies the multiplier, publishing time.speed_changed
// only on an actual change.
func (c *Clock) SetSpeed(speed float64) {
	clamped := clampSpeed(speed)
	if clamped == c.speed {
		return
	}
	c.speed = clamped
	c.bus.Publish(core.EventTimeSpeedChanged, SpeedChangedPayload{Speed: clamped})
}

// Resume unpauses the clock. Idempotent: publishes time.resumed only when
// the state actually changes.
func (c *Clock) Resume() {
	if c.running {
		return
	}
	c.running = true
	c.bus.Publish(core.EventTimeResumed, TickPayload{Time: c.time})
}

// Pause stops the clock. Idempotent: publishes time.paused only when the
// state actually changes. In-flight external calls are never cancelled;
// callers must discard stale replies themselves.
func (c *Clock) Pause() {
	if !c.running {
		return
	}
	c.running = false
	c.bus.Publish(core.EventTimePaused, TickPayload{Time: c.time})
}

// Tick advances the clock by the speed multiplier in simulated minutes. A
// paused clock ignores ticks. Each hour boundary crossed publishes one
// time.hour_changed and each day boundary one time.day_changed, so
// multi-hour jumps at high speed still emit every boundary event. Every
// applied tick ends with a time.tick carrying the resulting time and the
// delta.
func (c *Clock) Tick() {
	if !c.running {
		return
	}
	c.time.Minute += c.speed
	for c.time.Minute >= minutesPerHour {
		c.time.Minute -= minutesPerHour
		c.time.Hour++
		if c.time.Hour >= 24 {
			c.time.Hour -= 24
			c.time.Day++
			c.bus.Publish(core.EventTimeHourChanged, HourChangedPayload{Time: c.time})
			c.bus.Publish(core.EventTimeDayChanged, DayChangedPayload{Time: c.time})
			continue
		}
		c.bus.Publish(core.EventTimeHourChanged, HourChangedPayload{Time: c.time})
	}
	c.bus.Publish(core.EventTimeTick, TickPayload{Time: c.time, Delta: c.speed})
}

// Snapshot exposes the raw time value for persistence.
func (c *Clock) Snapshot() Time { return c.time }

// Restore replaces the raw time value. Running state and speed are not part
// of the persisted snapshot and are left untouched.
func (c *Clock) Restore(t Time) { c.time = t }
