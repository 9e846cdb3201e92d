// Package character implements the simulated agents: identity, spatial
// state, an owned memory stream and daily plan, relationships to other
// characters, and pending inner-voice commands. The Manager is the
// registry/query layer the world drives for batch operations (day-rollover
// replanning, tick-driven action refresh) and proximity queries.
//
// Characters reference each other strictly by id. Relationship targets and
// conversation participants are ids, never pointers, so snapshots carry no
// reference cycles.
package character
