// Package core provides the foundational types shared by every simulation
// subsystem. It defines the core abstractions for:
//
//   - Events (the closed vocabulary of things that happen in a world)
//   - The EventBus (typed pub/sub hub decoupling subsystems)
//   - Grid geometry (Point, Direction, distance metrics)
//
// The package intentionally keeps implementation concerns (persistence,
// planning, retrieval, concrete subsystems) out of scope. Subsystems never
// import each other directly; they communicate through the bus using the
// event types declared here, which is what keeps the clock, the characters
// and the conversation layer free of inter-dependencies.
package core
