// Package store contains concrete world.Store implementations. The store
// interface and State type reside in the world package; depend on
// world.Store in your code and select an implementation (in-memory below,
// sqlite or redis in the subpackages) at wiring time.
//
// Rationale: keeps domain contracts centralized while allowing pluggable
// backends to be added without introducing dependency cycles.
package store
