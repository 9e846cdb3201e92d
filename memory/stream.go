package memory

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/oklog/ulid/v2"
)

// ReflectionThreshold is the accumulated importance at which a character
// should pause and reflect on recent memories.
const ReflectionThreshold = 150

// recencyDecay is the per-hour exponential decay base for the recency axis.
const recencyDecay = 0.995

// knownPrefixLen is the prefix length for the duplicate-information check.
const knownPrefixLen = 30

// reflectionWindow is how many recent memories reflection questions are
// drawn from.
const reflectionWindow = 100

// maxReflectionQuestions caps the questions emitted per reflection.
const maxReflectionQuestions = 5

// Stream is one character's append-only memory journal. It has no knowledge
// of the event bus or any other subsystem; the owning character publishes
// memory events. Not safe for concurrent use: the simulation mutates each
// stream from a single call path (see package world).
type Stream struct {
	characterID string
	memories    []*Memory
	entropy     *ulid.MonotonicEntropy

	importanceAccum  int
	lastReflectionAt time.Time

	relevance RelevanceScorer
	sharing   ShareabilityPolicy
	diffusion *DiffusionLog
}

// StreamOptions configures a Stream.
type StreamOptions struct {
	// Relevance scores query/text relevance. Defaults to LexicalRelevance.
	Relevance RelevanceScorer
	// Shareability gates which memories spread in conversation. Defaults to
	// KeywordShareability.
	Shareability ShareabilityPolicy
	// Diffusion is the world's shared diffusion log. Optional; without it
	// RecordDiffusion still marks memories but writes no audit entries.
	Diffusion *DiffusionLog
}

// NewStream creates an empty stream for the given character.
func NewStream(characterID string, optFns ...func(o *StreamOptions)) *Stream {
	opts := StreamOptions{
		Relevance:    LexicalRelevance{},
		Shareability: KeywordShareability{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Stream{
		characterID: characterID,
		entropy:     ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		relevance:   opts.Relevance,
		sharing:     opts.Shareability,
		diffusion:   opts.Diffusion,
	}
}

// CharacterID returns the owning character id.
func (s *Stream) CharacterID() string { return s.characterID }

// Len returns the number of stored memories.
func (s *Stream) Len() int { return len(s.memories) }

// newID mints a monotonic ULID so id order within the stream matches
// insertion order.
func (s *Stream) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// Add appends a memory, filling in id and timestamps when absent and
// clamping importance to [1, 10]. The clamped importance is accumulated
// toward the reflection threshold. Returns the stored memory.
func (s *Stream) Add(m *Memory) *Memory {
	if m.ID == "" {
		m.ID = s.newID()
	}
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.LastAccessedAt.IsZero() {
		m.LastAccessedAt = m.CreatedAt
	}
	if m.Type == "" {
		m.Type = TypeObservation
	}
	m.Importance = clampImportance(m.Importance)
	s.memories = append(s.memories, m)
	s.importanceAccum += m.Importance
	return m
}

// AddObservation is a convenience for the most common memory kind.
func (s *Stream) AddObservation(text string, importance int) *Memory {
	return s.Add(&Memory{Text: text, Importance: importance, Type: TypeObservation})
}

// ShouldReflect reports whether accumulated importance since the last
// reflection has reached the threshold.
func (s *Stream) ShouldReflect() bool {
	return s.importanceAccum >= ReflectionThreshold
}

// ResetAccumulator zeroes the importance accumulator and stamps the
// reflection time. Callers invoke it after folding reflection results back
// in as reflection-typed memories.
func (s *Stream) ResetAccumulator() {
	s.importanceAccum = 0
	s.lastReflectionAt = time.Now().UTC()
}

// ImportanceAccumulator returns the running importance sum since the last
// reflection.
func (s *Stream) ImportanceAccumulator() int { return s.importanceAccum }

type scored struct {
	index int
	score float64
}

// Retrieve scores every memory on three independently normalized [0,1] axes
// and returns the topK by weighted sum:
//
//	recency    = 0.995^hoursElapsed (one value per call, a deliberate
//	             simplification: the caller passes the elapsed hours for the
//	             whole retrieval, not per-memory age)
//	importance = importance / 10
//	relevance  = lexical overlap of significant words (see RelevanceScorer)
//
// Ties break by insertion order. Only returned memories have their
// LastAccessedAt updated. An empty stream or topK <= 0 yields an empty
// result, never an error.
func (s *Stream) Retrieve(query string, hoursElapsed float64, w Weights, topK int) []*Memory {
	if len(s.memories) == 0 || topK <= 0 {
		return nil
	}
	recency := math.Pow(recencyDecay, hoursElapsed)
	ranked := make([]scored, len(s.memories))
	for i, m := range s.memories {
		importance := float64(m.Importance) / float64(MaxImportance)
		relevance := s.relevance.Score(query, m.Text)
		ranked[i] = scored{
			index: i,
			score: w.Recency*recency + w.Importance*importance + w.Relevance*relevance,
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if topK > len(ranked) {
		topK = len(ranked)
	}
	now := time.Now().UTC()
	out := make([]*Memory, 0, topK)
	for _, r := range ranked[:topK] {
		m := s.memories[r.index]
		m.LastAccessedAt = now
		out = append(out, m)
	}
	return out
}

var reflectionTemplates = []string{
	"What does %s mean to me?",
	"How do I feel about %s?",
	"What have I learned recently about %s?",
	"How has %s changed my plans?",
	"What should I do next regarding %s?",
}

// ReflectionQuestions extracts capitalized tokens from the last hundred
// memories as subjects and renders up to five template questions about the
// most frequently mentioned ones. Empty streams yield no questions.
func (s *Stream) ReflectionQuestions() []string {
	start := len(s.memories) - reflectionWindow
	if start < 0 {
		start = 0
	}
	counts := make(map[string]int)
	var order []string
	for _, m := range s.memories[start:] {
		for _, word := range strings.Fields(m.Text) {
			trimmed := strings.TrimFunc(word, func(r rune) bool { return !unicode.IsLetter(r) })
			if len(trimmed) <= minWordLen || !unicode.IsUpper(rune(trimmed[0])) {
				continue
			}
			if counts[trimmed] == 0 {
				order = append(order, trimmed)
			}
			counts[trimmed]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	questions := make([]string, 0, maxReflectionQuestions)
	for i, subject := range order {
		if i >= maxReflectionQuestions {
			break
		}
		questions = append(questions, fmt.Sprintf(reflectionTemplates[i%len(reflectionTemplates)], subject))
	}
	return questions
}

// FindShareable selects up to topK memories worth passing on to the target
// character: not yet diffused to them and marked shareable by the policy
// (importance >= 5 or a social keyword). Ordered by importance descending,
// ties by insertion order.
func (s *Stream) FindShareable(targetID string, topK int) []*Memory {
	if topK <= 0 {
		return nil
	}
	var candidates []*Memory
	for _, m := range s.memories {
		if m.IsDiffusedTo(targetID) {
			continue
		}
		if s.sharing.Shareable(m) {
			candidates = append(candidates, m)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Importance > candidates[j].Importance })
	if topK > len(candidates) {
		topK = len(candidates)
	}
	return candidates[:topK]
}

// KnowsInformation reports whether the stream already holds the given piece
// of information, either by sharing at least three significant words with an
// existing memory or by a thirty-character prefix match. Used to suppress
// re-teaching facts a character already knows.
func (s *Stream) KnowsInformation(text string) bool {
	incoming := make(map[string]bool)
	for _, w := range significantWords(text) {
		incoming[w] = true
	}
	prefix := normalizedPrefix(text)
	for _, m := range s.memories {
		if prefix != "" && strings.HasPrefix(normalizedPrefix(m.Text), prefix) {
			return true
		}
		shared := 0
		for _, w := range significantWords(m.Text) {
			if incoming[w] {
				shared++
				if shared >= 3 {
					return true
				}
			}
		}
	}
	return false
}

func normalizedPrefix(s string) string {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if len(trimmed) > knownPrefixLen {
		trimmed = trimmed[:knownPrefixLen]
	}
	return trimmed
}

// RecordDiffusion marks the memory as shared with the target and appends an
// audit entry to the world's diffusion log. Idempotent per (memory, target):
// repeating a share is a no-op returning false, so the log carries exactly
// one entry per distinct pair.
func (s *Stream) RecordDiffusion(m *Memory, sourceID, targetID, context string) bool {
	if m == nil || targetID == "" {
		return false
	}
	if !m.markDiffused(targetID) {
		return false
	}
	if s.diffusion != nil {
		s.diffusion.append(DiffusionEntry{
			ID:        s.newID(),
			MemoryID:  m.ID,
			SourceID:  sourceID,
			TargetID:  targetID,
			Context:   context,
			Timestamp: time.Now().UTC(),
		})
	}
	return true
}

// Memories returns the journal in insertion order. The slice is a copy; the
// pointed-to memories are live.
func (s *Stream) Memories() []*Memory {
	out := make([]*Memory, len(s.memories))
	copy(out, s.memories)
	return out
}

// Snapshot captures the stream for persistence.
func (s *Stream) Snapshot() StreamSnapshot {
	memories := make([]Memory, len(s.memories))
	for i, m := range s.memories {
		memories[i] = *m
	}
	return StreamSnapshot{
		Memories:         memories,
		ImportanceAccum:  s.importanceAccum,
		LastReflectionAt: s.lastReflectionAt,
	}
}

// Restore replaces the stream contents from a snapshot.
func (s *Stream) Restore(snap StreamSnapshot) {
	s.memories = make([]*Memory, len(snap.Memories))
	for i := range snap.Memories {
		m := snap.Memories[i]
		s.memories[i] = &m
	}
	s.importanceAccum = snap.ImportanceAccum
	s.lastReflectionAt = snap.LastReflectionAt
}

// StreamSnapshot is the plain serializable form of a Stream.
type StreamSnapshot struct {
	Memories         []Memory  `json:"memories"`
	ImportanceAccum  int       `json:"importance_accum"`
	LastReflectionAt time.Time `json:"last_reflection_at,omitempty"`
}

// ContextString renders memories as a prompt-ready block, one line per
// memory. The core exposes data only; prompt wording is the caller's
// concern.
func ContextString(memories []*Memory) string {
	var b strings.Builder
	for _, m := range memories {
		fmt.Fprintf(&b, "- [%s, importance %d] %s\n", m.Type, m.Importance, m.Text)
	}
	return b.String()
}
