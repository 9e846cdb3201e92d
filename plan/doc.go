// Package plan implements the hierarchical daily schedule: broad strokes
// produced by an occupation-keyed routine builder, decomposed into hourly
// chunks that exactly tile their parent span, and on demand into detailed
// activities of at most fifteen minutes each.
//
// Occupations are a tagged enumeration resolved once when a character
// template is loaded; unknown occupations fall back to a generic routine.
// Custom routines plug in through the RoutineSource interface.
package plan
