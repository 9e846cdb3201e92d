// Package world wires the simulation subsystems together. A World owns one
// event bus, clock, character registry, conversation registry, environment
// tree, game map and diffusion log for its lifetime, and carries the
// cross-cutting policy: day rollover replans every character, every tick
// refreshes current actions, and conversation lifecycle events append log
// lines.
//
// Caller discipline: the simulation is single-threaded and cooperative. No
// entity is mutated by two overlapping call paths; the core provides no
// locking. Callers running concurrent external operations (dialogue
// generation, storage) must target disjoint character ids and fold results
// back on the owning goroutine. Pausing stops further ticks but never
// cancels in-flight external calls; stale replies must be discarded by the
// caller.
package world
