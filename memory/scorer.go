package memory

import "strings"

// minWordLen is the exclusive length cutoff below which tokens are ignored
// by the lexical heuristics. Short words (articles, pronouns) carry no
// signal for overlap scoring.
const minWordLen = 3

// RelevanceScorer rates how relevant a memory text is to a query on a [0,1]
// scale. The retrieval algorithm in Stream.Retrieve never changes when the
// heuristic is swapped for a model-backed implementation.
type RelevanceScorer interface {
	Score(query, text string) float64
}

// ImportanceScorer rates the importance of new information on the 1-10
// scale used by Memory.Importance.
type ImportanceScorer interface {
	Score(text string) int
}

// ShareabilityPolicy decides whether a memory is interesting enough to pass
// on in conversation.
type ShareabilityPolicy interface {
	Shareable(m *Memory) bool
}

// LexicalRelevance scores relevance as the normalized overlap of words
// longer than three characters between query and text: hits over the number
// of significant query words. It is a placeholder for an embedding-backed
// scorer.
type LexicalRelevance struct{}

// Score implements RelevanceScorer.
func (LexicalRelevance) Score(query, text string) float64 {
	queryWords := significantWords(query)
	if len(queryWords) == 0 {
		return 0
	}
	textWords := make(map[string]bool)
	for _, w := range significantWords(text) {
		textWords[w] = true
	}
	hits := 0
	seen := make(map[string]bool)
	for _, w := range queryWords {
		if seen[w] {
			continue
		}
		seen[w] = true
		if textWords[w] {
			hits++
		}
	}
	return float64(hits) / float64(len(seen))
}

// KeywordImportance assigns importance by scanning for charged keywords.
// Deliberately coarse; swap for a model-backed scorer via ImportanceScorer.
type KeywordImportance struct{}

var importantKeywords = map[string]int{
	"died": 10, "death": 10, "fire": 9, "accident": 9, "wedding": 8,
	"love": 7, "fight": 7, "argument": 6, "party": 6, "secret": 6,
	"new": 4, "met": 4, "talked": 3, "saw": 2,
}

// Score implements ImportanceScorer. Keywords are matched on raw tokens, not
// significant words, since several of them are three letters long.
func (KeywordImportance) Score(text string) int {
	best := MinImportance
	for _, w := range tokens(text) {
		if v, ok := importantKeywords[w]; ok && v > best {
			best = v
		}
	}
	return best
}

// KeywordShareability marks a memory shareable when it is important enough
// (>= 5) or mentions a social keyword.
type KeywordShareability struct{}

var socialKeywords = []string{
	"party", "wedding", "secret", "rumor", "news", "announcement",
	"moving", "arrived", "relationship", "argument", "celebration",
}

// Shareable implements ShareabilityPolicy.
func (KeywordShareability) Shareable(m *Memory) bool {
	if m.Importance >= 5 {
		return true
	}
	lower := strings.ToLower(m.Text)
	for _, kw := range socialKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// tokens lowercases and splits on anything outside letters, digits and
// apostrophes.
func tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r == '\'')
	})
}

// significantWords keeps only the tokens longer than three characters.
func significantWords(s string) []string {
	fields := tokens(s)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > minWordLen {
			words = append(words, f)
		}
	}
	return words
}
