package memory

import (
	"strings"
	"testing"
	"time"
)

func TestStreamAddFillsDefaults(t *testing.T) {
	s := NewStream("char-1")
	m := s.Add(&Memory{Text: "saw a red bird"})

	if m.ID == "" {
		t.Error("expected generated id")
	}
	if m.CreatedAt.IsZero() || m.LastAccessedAt.IsZero() {
		t.Error("expected timestamps to be filled")
	}
	if m.Type != TypeObservation {
		t.Errorf("expected default type observation, got %q", m.Type)
	}
	if m.Importance != MinImportance {
		t.Errorf("expected importance clamped to %d, got %d", MinImportance, m.Importance)
	}
}

func TestStreamAddClampsImportance(t *testing.T) {
	s := NewStream("char-1")

	if got := s.Add(&Memory{Text: "a", Importance: -5}).Importance; got != MinImportance {
		t.Errorf("importance -5: got %d, want %d", got, MinImportance)
	}
	if got := s.Add(&Memory{Text: "b", Importance: 42}).Importance; got != MaxImportance {
		t.Errorf("importance 42: got %d, want %d", got, MaxImportance)
	}
}

func TestStreamIDsFollowInsertionOrder(t *testing.T) {
	s := NewStream("char-1")
	var prev string
	for i := 0; i < 10; i++ {
		m := s.AddObservation("something happened", 1)
		if m.ID <= prev {
			t.Fatalf("id %q not greater than previous %q", m.ID, prev)
		}
		prev = m.ID
	}
}

func TestRetrieveRanksByImportance(t *testing.T) {
	s := NewStream("char-1")
	s.AddObservation("ate breakfast", 2)
	big := s.AddObservation("the bakery caught fire", 9)
	s.AddObservation("watered the plants", 3)

	got := s.Retrieve("zzz", 0, DefaultWeights(), 1)
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got[0].ID != big.ID {
		t.Errorf("expected the important memory first, got %q", got[0].Text)
	}
}

func TestRetrieveRanksByRelevance(t *testing.T) {
	s := NewStream("char-1")
	s.AddObservation("watered the plants in the garden", 5)
	match := s.AddObservation("fresh apples arrived at the market stall", 5)

	got := s.Retrieve("fresh apples market", 0, DefaultWeights(), 1)
	if len(got) != 1 || got[0].ID != match.ID {
		t.Fatalf("expected the relevant memory first, got %v", got)
	}
}

func TestRetrieveTiesBreakByInsertionOrder(t *testing.T) {
	s := NewStream("char-1")
	first := s.AddObservation("walked north", 4)
	s.AddObservation("walked south", 4)
	s.AddObservation("walked east", 4)

	got := s.Retrieve("zzz", 0, DefaultWeights(), 1)
	if len(got) != 1 || got[0].ID != first.ID {
		t.Fatalf("expected the earliest memory on a full tie, got %v", got)
	}
}

func TestRetrieveTouchesOnlyReturned(t *testing.T) {
	s := NewStream("char-1")
	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	hit := s.Add(&Memory{Text: "big wedding in town", Importance: 9, CreatedAt: old, LastAccessedAt: old})
	miss := s.Add(&Memory{Text: "quiet afternoon", Importance: 1, CreatedAt: old, LastAccessedAt: old})

	got := s.Retrieve("zzz", 0, DefaultWeights(), 1)
	if len(got) != 1 || got[0].ID != hit.ID {
		t.Fatalf("unexpected retrieval result: %v", got)
	}
	if !hit.LastAccessedAt.After(old) {
		t.Error("returned memory should have LastAccessedAt updated")
	}
	if !miss.LastAccessedAt.Equal(old) {
		t.Error("non-returned memory must not be touched")
	}
}

func TestRetrieveEdgeCases(t *testing.T) {
	s := NewStream("char-1")
	if got := s.Retrieve("anything", 0, DefaultWeights(), 3); got != nil {
		t.Errorf("empty stream: expected nil, got %v", got)
	}
	s.AddObservation("something", 5)
	if got := s.Retrieve("anything", 0, DefaultWeights(), 0); got != nil {
		t.Errorf("topK 0: expected nil, got %v", got)
	}
	if got := s.Retrieve("anything", 0, DefaultWeights(), 99); len(got) != 1 {
		t.Errorf("topK beyond size: expected 1 result, got %d", len(got))
	}
}

func TestShouldReflectAtThreshold(t *testing.T) {
	s := NewStream("char-1")
	for i := 0; i < 14; i++ {
		s.AddObservation("routine chore", 10)
	}
	if s.ShouldReflect() {
		t.Fatalf("accumulator %d below threshold, should not reflect", s.ImportanceAccumulator())
	}
	s.AddObservation("routine chore", 10)
	if !s.ShouldReflect() {
		t.Fatalf("accumulator %d at threshold, should reflect", s.ImportanceAccumulator())
	}
	s.ResetAccumulator()
	if s.ShouldReflect() || s.ImportanceAccumulator() != 0 {
		t.Error("reset should zero the accumulator")
	}
}

func TestReflectionQuestions(t *testing.T) {
	s := NewStream("char-1")
	s.AddObservation("Talked with Bert about the market", 3)
	s.AddObservation("Bert mentioned the harvest festival", 3)
	s.AddObservation("Saw Bert near the fountain", 3)
	s.AddObservation("Alice waved from across the street", 2)

	questions := s.ReflectionQuestions()
	if len(questions) == 0 {
		t.Fatal("expected questions")
	}
	if len(questions) > 5 {
		t.Fatalf("expected at most 5 questions, got %d", len(questions))
	}
	if !strings.Contains(questions[0], "Bert") {
		t.Errorf("most frequent subject should lead, got %q", questions[0])
	}
}

func TestReflectionQuestionsEmptyStream(t *testing.T) {
	s := NewStream("char-1")
	if got := s.ReflectionQuestions(); len(got) != 0 {
		t.Errorf("expected no questions, got %v", got)
	}
}

func TestFindShareable(t *testing.T) {
	s := NewStream("char-1")
	s.AddObservation("had toast", 1)
	gossip := s.AddObservation("heard a rumor at the well", 3) // social keyword
	big := s.AddObservation("the mayor announced a festival", 8)
	already := s.AddObservation("a wedding is planned for spring", 7)
	already.DiffusedTo = []string{"char-2"}

	got := s.FindShareable("char-2", 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 shareable memories, got %d", len(got))
	}
	if got[0].ID != big.ID || got[1].ID != gossip.ID {
		t.Errorf("expected importance-descending order, got %q then %q", got[0].Text, got[1].Text)
	}

	// The same memory is still shareable with a different target.
	other := s.FindShareable("char-3", 10)
	if len(other) != 3 {
		t.Errorf("expected 3 shareable memories for a fresh target, got %d", len(other))
	}
}

func TestKnowsInformation(t *testing.T) {
	s := NewStream("char-1")
	s.AddObservation("Fresh apples arrived at the market stall this morning", 5)

	if !s.KnowsInformation("apples arrived market") {
		t.Error("three shared significant words should count as known")
	}

	// Only two significant words overlap here, so the prefix check alone
	// has to carry the match.
	s.AddObservation("Meet at the old oak by the gate at dawn", 4)
	if !s.KnowsInformation("MEET at the old oak by the gate at noon") {
		t.Error("matching thirty-character prefix should count as known")
	}
	if s.KnowsInformation("the blacksmith forged a new plow") {
		t.Error("unrelated information should not count as known")
	}
	if s.KnowsInformation("apples arrived") {
		t.Error("two shared words are not enough")
	}
}

func TestRecordDiffusion(t *testing.T) {
	log := NewDiffusionLog()
	s := NewStream("char-1", func(o *StreamOptions) { o.Diffusion = log })
	m := s.AddObservation("the mill is closing next month", 7)

	if !s.RecordDiffusion(m, "char-1", "char-2", "conv-1") {
		t.Fatal("first share should succeed")
	}
	if s.RecordDiffusion(m, "char-1", "char-2", "conv-2") {
		t.Fatal("repeat share to the same target must be a no-op")
	}
	if !s.RecordDiffusion(m, "char-1", "char-3", "conv-3") {
		t.Fatal("share to a new target should succeed")
	}

	if len(m.DiffusedTo) != 2 {
		t.Errorf("expected 2 diffusion targets, got %v", m.DiffusedTo)
	}
	if log.Len() != 2 {
		t.Errorf("expected exactly one log entry per distinct pair, got %d", log.Len())
	}
	entries := log.Entries()
	if entries[0].TargetID != "char-2" || entries[1].TargetID != "char-3" {
		t.Errorf("unexpected log order: %v", entries)
	}
	if entries[0].Context != "conv-1" {
		t.Errorf("expected the first share's context, got %q", entries[0].Context)
	}
}

func TestRecordDiffusionGuards(t *testing.T) {
	s := NewStream("char-1")
	if s.RecordDiffusion(nil, "a", "b", "") {
		t.Error("nil memory must be rejected")
	}
	m := s.AddObservation("news", 5)
	if s.RecordDiffusion(m, "a", "", "") {
		t.Error("empty target must be rejected")
	}
	// No log configured: marking still works.
	if !s.RecordDiffusion(m, "a", "b", "") {
		t.Error("share without a log should still mark the memory")
	}
}

func TestStreamSnapshotRestore(t *testing.T) {
	s := NewStream("char-1")
	s.AddObservation("saw the sunrise", 3)
	s.AddObservation("met a traveling merchant", 6)

	snap := s.Snapshot()
	restored := NewStream("char-1")
	restored.Restore(snap)

	if restored.Len() != 2 {
		t.Fatalf("expected 2 memories after restore, got %d", restored.Len())
	}
	if restored.ImportanceAccumulator() != s.ImportanceAccumulator() {
		t.Error("accumulator should survive the round trip")
	}
	if restored.Memories()[1].Text != "met a traveling merchant" {
		t.Error("restore should preserve insertion order")
	}

	// The restored stream owns its copies.
	restored.Memories()[0].Text = "changed"
	if s.Memories()[0].Text == "changed" {
		t.Error("restored memories must not alias the source")
	}
}

func TestContextString(t *testing.T) {
	memories := []*Memory{
		{Text: "saw the sunrise", Importance: 3, Type: TypeObservation},
		{Text: "I value quiet mornings", Importance: 6, Type: TypeReflection},
	}
	got := ContextString(memories)
	want := "- [observation, importance 3] saw the sunrise\n- [reflection, importance 6] I value quiet mornings\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
