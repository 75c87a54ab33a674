// Package ranking scores and orders journey alternatives.
//
// Rank is a pure function: given a candidate set and a named strategy it
// produces deterministic, explained scores with no I/O. Metrics are
// normalized against the candidate set's own min/max, so scores are only
// comparable within one call.
package ranking
