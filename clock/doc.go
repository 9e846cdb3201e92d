// Package clock implements the simulated world clock. The clock owns two
// axes of state, running/paused and a speed multiplier, and advances only
// when Tick is called. It publishes time events on the world's event bus but
// never schedules itself: the periodic driver that calls Tick repeatedly is
// an external capability (a time.Ticker in the CLI, a manual loop in tests).
package clock
