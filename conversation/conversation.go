// Package conversation implements the turn-taking dialogue lifecycle:
// conversations are created by Start, grown by AddMessage and closed by End.
// Message content arrives as plain strings from external language-generation
// calls; this package owns only the state machine. The end policy (message
// cap or farewell keyword) is intentionally heuristic and replaceable by an
// external judgment call without altering the state machine.
package conversation

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/agentville/core"
)

// MaxMessages is the hard cap after which ShouldEnd always reports true.
const MaxMessages = 10

var farewellKeywords = []string{
	"goodbye", "bye", "see you", "farewell", "take care",
	"talk later", "gotta go", "good night",
}

// Message is one dialogue turn.
type Message struct {
	SpeakerID string    `json:"speaker_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is a pairwise (or larger) dialogue. Participants are
// character ids in joining order; messages keep arrival order.
type Conversation struct {
	ID           string    `json:"id"`
	Participants []string  `json:"participants"`
	Messages     []Message `json:"messages"`
	StartedAt    time.Time `json:"started_at"`
	EndedAt      time.Time `json:"ended_at,omitempty"`
	Location     string    `json:"location,omitempty"`
	Active       bool      `json:"active"`
}

// LastMessage returns the most recent message, or nil for an empty
// conversation.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}

// StartedPayload accompanies conversation.started events.
type StartedPayload struct {
	ConversationID string   `json:"conversation_id"`
	Participants   []string `json:"participants"`
	Location       string   `json:"location,omitempty"`
}

// MessagePayload accompanies conversation.message events.
type MessagePayload struct {
	ConversationID string `json:"conversation_id"`
	SpeakerID      string `json:"speaker_id"`
	Text           string `json:"text"`
}

// EndedPayload accompanies conversation.ended events.
type EndedPayload struct {
	ConversationID string `json:"conversation_id"`
	MessageCount   int    `json:"message_count"`
}

// Manager owns the conversation registry and active-pointer bookkeeping.
// Contract violations (messages to unknown or ended conversations, ending a
// non-existent conversation) are safe no-ops: the world clock must keep
// advancing even against stale references.
type Manager struct {
	bus      *core.EventBus
	byID     map[string]*Conversation
	order    []string
	activeBy map[string]string // participant id -> active conversation id
}

// NewManager creates an empty registry publishing on bus.
func NewManager(bus *core.EventBus) *Manager {
	return &Manager{
		bus:      bus,
		byID:     make(map[string]*Conversation),
		activeBy: make(map[string]string),
	}
}

// Start opens a conversation between the participants at a location and
// publishes conversation.started. Each participant's active pointer is set;
// a participant already in an active conversation keeps both (the caller
// decides whether that is allowed).
func (m *Manager) Start(participants []string, location string) *Conversation {
	c := &Conversation{
		ID:           uuid.NewString(),
		Participants: append([]string(nil), participants...),
		StartedAt:    time.Now().UTC(),
		Location:     location,
		Active:       true,
	}
	m.byID[c.ID] = c
	m.order = append(m.order, c.ID)
	for _, p := range participants {
		m.activeBy[p] = c.ID
	}
	if m.bus != nil {
		m.bus.Publish(core.EventConversationStarted, StartedPayload{ConversationID: c.ID, Participants: c.Participants, Location: location})
	}
	return c
}

// Get returns the conversation or nil.
func (m *Manager) Get(id string) *Conversation { return m.byID[id] }

// ActiveFor returns the conversation the character is currently in, or nil.
func (m *Manager) ActiveFor(characterID string) *Conversation {
	id, ok := m.activeBy[characterID]
	if !ok {
		return nil
	}
	return m.byID[id]
}

// AddMessage appends a turn and publishes conversation.message. Unknown or
// ended conversations are a no-op returning nil; a dialogue reply arriving
// after its conversation ended is stale and must be discarded.
func (m *Manager) AddMessage(conversationID, speakerID, text string) *Message {
	c := m.byID[conversationID]
	if c == nil || !c.Active {
		return nil
	}
	c.Messages = append(c.Messages, Message{SpeakerID: speakerID, Text: text, Timestamp: time.Now().UTC()})
	if m.bus != nil {
		m.bus.Publish(core.EventConversationMessage, MessagePayload{ConversationID: conversationID, SpeakerID: speakerID, Text: text})
	}
	return c.LastMessage()
}

// End closes the conversation: stamps the end time, clears the participants'
// active pointers and publishes conversation.ended. Unknown or already-ended
// ids are a no-op returning false.
func (m *Manager) End(conversationID string) bool {
	c := m.byID[conversationID]
	if c == nil || !c.Active {
		return false
	}
	c.Active = false
	c.EndedAt = time.Now().UTC()
	for _, p := range c.Participants {
		if m.activeBy[p] == conversationID {
			delete(m.activeBy, p)
		}
	}
	if m.bus != nil {
		m.bus.Publish(core.EventConversationEnded, EndedPayload{ConversationID: conversationID, MessageCount: len(c.Messages)})
	}
	return true
}

// ShouldEnd is the policy gate for closing a conversation: a hard cap of
// MaxMessages, or a farewell keyword in the latest message. Unknown ids
// report true so stale loops terminate.
func (m *Manager) ShouldEnd(conversationID string) bool {
	c := m.byID[conversationID]
	if c == nil || !c.Active {
		return true
	}
	if len(c.Messages) >= MaxMessages {
		return true
	}
	last := c.LastMessage()
	if last == nil {
		return false
	}
	lower := strings.ToLower(last.Text)
	for _, kw := range farewellKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// All returns every conversation in creation order.
func (m *Manager) All() []*Conversation {
	out := make([]*Conversation, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out
}

// Restore replaces the registry from persisted conversations, rebuilding
// active pointers for conversations still open.
func (m *Manager) Restore(conversations []Conversation) {
	m.byID = make(map[string]*Conversation, len(conversations))
	m.order = m.order[:0]
	m.activeBy = make(map[string]string)
	for i := range conversations {
		c := conversations[i]
		m.byID[c.ID] = &c
		m.order = append(m.order, c.ID)
		if c.Active {
			for _, p := range c.Participants {
				m.activeBy[p] = c.ID
			}
		}
	}
}
