// Package memory implements the per-character memory stream: an append-only
// journal of scored records with weighted retrieval, reflection gating and
// conversation-driven diffusion tracking.
//
// Retrieval ranks every memory on three independently normalized axes
// (recency, importance, lexical relevance) combined as a weighted sum. The
// relevance heuristic sits behind the RelevanceScorer interface so a
// model-backed scorer can replace the keyword one without touching the
// retrieval algorithm. The same applies to the importance and shareability
// heuristics.
//
// The DiffusionLog records which memories spread to which characters. It is
// an explicitly constructed instance owned by one world and passed by
// reference; there is no package-level log.
package memory
