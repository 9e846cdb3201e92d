package memory

import "time"

// DiffusionEntry is one audit record of a memory spreading from one
// character to another.
type DiffusionEntry struct {
	ID        string    `json:"id"`
	MemoryID  string    `json:"memory_id"`
	SourceID  string    `json:"source_id"`
	TargetID  string    `json:"target_id"`
	Context   string    `json:"context,omitempty"` // conversation id or free text
	Timestamp time.Time `json:"timestamp"`
}

// DiffusionLog collects diffusion entries for one world. Construct one per
// world and pass it by reference to every stream that records diffusion;
// there is no global log.
type DiffusionLog struct {
	entries []DiffusionEntry
}

// NewDiffusionLog creates an empty log.
func NewDiffusionLog() *DiffusionLog {
	return &DiffusionLog{}
}

func (l *DiffusionLog) append(e DiffusionEntry) {
	l.entries = append(l.entries, e)
}

// Entries returns a defensive copy of all recorded entries in order.
func (l *DiffusionLog) Entries() []DiffusionEntry {
	out := make([]DiffusionEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *DiffusionLog) Len() int { return len(l.entries) }

// Restore replaces the log contents from a persisted snapshot.
func (l *DiffusionLog) Restore(entries []DiffusionEntry) {
	l.entries = make([]DiffusionEntry, len(entries))
	copy(l.entries, entries)
}
