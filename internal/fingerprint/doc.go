// Package fingerprint defines the semantic fingerprint data model shared by the
// similarity analyzer, the discovery key hasher, and the generator.
//
// A Result is the extracted sense of one input: a short description plus an
// ordered list of weighted anchor words. The order is generation order (by tier,
// descending weight) and carries no uniqueness guarantee; two items may share a
// word before normalization.
//
// Normalize folds a Result into a lowercase word to weight map. When the same
// lowercase word appears more than once the later occurrence wins. This quirk is
// kept for compatibility with previously generated results; Inspect reports it
// so callers can log it instead of silently scoring against a collapsed map.
//
// Nothing in this package validates weights. Ingestion is lenient: whatever the
// generator produced is accepted and scored deterministically.
package fingerprint
