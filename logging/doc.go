// Package logging provides a tiny abstraction over slog so the simulation
// core can depend on a minimal interface (Logger) while allowing users to
// plug any structured logger. It also offers a richer SimLogger with
// contextual helpers (world, character, component) and domain specific
// logging helpers for ticks, dialogue calls and persistence operations.
package logging
