// Package session runs a batch of fingerprint generations and compares the
// results pairwise.
//
// Generations run concurrently up to a configured limit, and a rate limiter
// staggers request starts. Each generation gets its own timeout. A failed item is
// recorded on the report and never cancels its siblings; only cancellation of
// the parent context stops pending work. Comparisons cover completed items
// only, in input order.
package session
