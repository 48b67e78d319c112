// Package similarity compares semantic fingerprints and explains the result.
//
// Analyze implements the tiered weighted-overlap score: every anchor shared by
// both fingerprints contributes the average of its two weights, boosted by 1.3
// when both sides treat it as a core (>= 0.9) word with equal weight, or by 1.2
// when the weights differ (a cross-tier connection). The intersection is divided
// by the smaller raw total so a fingerprint that is a semantic subset of a richer
// one still scores highly, and the ratio is clamped to [0, 1].
//
// Earlier scoring regimes are available as named Strategy values so results can
// be reproduced against historical data without conflating formulas:
//
//	tiered      the default, same as Analyze
//	flat-bonus  flat 1.3 boost on every shared anchor over the smaller total
//	jaccard     sum of per-word minimum weights over sum of maximum weights
//
// Classify maps a score to the display buckets shared by every front end.
//
// Everything here is pure and safe for concurrent use.
package similarity
