package core

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies one kind of simulation event. The set of types is a
// closed enumeration: subsystems publish only the constants below and
// subscribers can rely on no other values appearing on the bus. The bus
// itself is payload-agnostic; the payload structs live next to their
// publishers.
type EventType string

const (
	// Time events, published by the clock.
	EventTimeTick         EventType = "time.tick"
	EventTimeHourChanged  EventType = "time.hour_changed"
	EventTimeDayChanged   EventType = "time.day_changed"
	EventTimePaused       EventType = "time.paused"
	EventTimeResumed      EventType = "time.resumed"
	EventTimeSpeedChanged EventType = "time.speed_changed"

	// Character events.
	EventCharacterMoved         EventType = "character.moved"
	EventCharacterActionChanged EventType = "character.action_changed"
	EventCharacterCommand       EventType = "character.command"

	// Memory events.
	EventMemoryAdded      EventType = "memory.added"
	EventMemoryReflection EventType = "memory.reflection"
	EventMemoryDiffused   EventType = "memory.diffused"

	// Conversation lifecycle events.
	EventConversationStarted EventType = "conversation.started"
	EventConversationMessage EventType = "conversation.message"
	EventConversationEnded   EventType = "conversation.ended"

	// World events.
	EventWorldStarted EventType = "world.started"
	EventWorldLoaded  EventType = "world.loaded"
	EventWorldLog     EventType = "world.log"
)

// Event is the unit of communication between subsystems. After publication
// it should be treated as immutable. The Payload is owned by the publisher;
// subscribers must not mutate it.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// NewEvent creates an event of the given type carrying payload, stamped with
// a fresh id and the current UTC time.
func NewEvent(eventType EventType, payload any) Event {
	return Event{
		ID:        NewID(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// NewID generates a new unique identifier.
//
// Returns a string representation of a new UUID. Used for events, plans,
// characters, conversations and worlds; memory entries use monotonic ULIDs
// instead (see the memory package).
func NewID() string { return uuid.NewString() }
