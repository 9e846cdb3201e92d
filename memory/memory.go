package memory

import (
	"time"
)

// Type categorizes a memory record.
type Type string

const (
	TypeObservation  Type = "observation"
	TypeReflection   Type = "reflection"
	TypePlan         Type = "plan"
	TypeConversation Type = "conversation"
	TypeCommand      Type = "command"
)

// Importance bounds. Add clamps into this range.
const (
	MinImportance = 1
	MaxImportance = 10
)

// Memory is one journal entry. IDs are monotonic ULIDs so lexical order of
// ids within a stream equals insertion order. DiffusedTo holds the ids of
// characters this memory has already been shared with; it never contains
// duplicates.
type Memory struct {
	ID             string    `json:"id"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
	Importance     int       `json:"importance"`
	Type           Type      `json:"type"`
	Provenance     []string  `json:"provenance,omitempty"` // ids of memories this one was derived from
	SourceID       string    `json:"source_id,omitempty"`  // character the information came from
	DiffusedTo     []string  `json:"diffused_to,omitempty"`
}

// IsDiffusedTo reports whether the memory was already shared with the target
// character.
func (m *Memory) IsDiffusedTo(targetID string) bool {
	for _, id := range m.DiffusedTo {
		if id == targetID {
			return true
		}
	}
	return false
}

// markDiffused records the target, keeping DiffusedTo duplicate-free.
// Returns false when the target was already present.
func (m *Memory) markDiffused(targetID string) bool {
	if m.IsDiffusedTo(targetID) {
		return false
	}
	m.DiffusedTo = append(m.DiffusedTo, targetID)
	return true
}

func clampImportance(v int) int {
	if v < MinImportance {
		return MinImportance
	}
	if v > MaxImportance {
		return MaxImportance
	}
	return v
}

// Weights are the three retrieval coefficients combined to rank memories.
type Weights struct {
	Recency    float64 `json:"recency"`
	Importance float64 `json:"importance"`
	Relevance  float64 `json:"relevance"`
}

// DefaultWeights weighs all three axes equally.
func DefaultWeights() Weights {
	return Weights{Recency: 1, Importance: 1, Relevance: 1}
}
