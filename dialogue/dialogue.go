// Package dialogue defines the contract for the external language-generation
// collaborator and ships reference provider adapters (openai, anthropic) in
// subpackages. The simulation core never imports this package: it only
// exposes data (memory context strings, character summaries, time-of-day
// descriptions) that owning callers package into a Request here, and folds
// the returned plain strings back in through ordinary mutators.
package dialogue

import "context"

// Turn is one prior utterance of the conversation history.
type Turn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Request carries the core-produced data a provider turns into one dialogue
// utterance. All fields are plain strings the caller assembled from the
// core's accessors; the provider owns the actual prompt wording.
type Request struct {
	SpeakerSummary  string `json:"speaker_summary"`
	ListenerSummary string `json:"listener_summary"`
	MemoryContext   string `json:"memory_context,omitempty"`
	TimeOfDay       string `json:"time_of_day,omitempty"`
	Location        string `json:"location,omitempty"`
	History         []Turn `json:"history,omitempty"`
}

// Provider generates dialogue turns and yes/no judgments. Implementations
// are expected to be called concurrently for distinct characters; replies
// for conversations that have since ended must be discarded by the caller.
type Provider interface {
	// GenerateTurn produces the speaker's next utterance.
	GenerateTurn(ctx context.Context, req Request) (string, error)
	// Decide answers a yes/no question about simulation state, used for the
	// nuanced cases the keyword heuristics punt on (replanning, ending a
	// conversation early).
	Decide(ctx context.Context, question string) (bool, error)
}
