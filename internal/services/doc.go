// Package services defines shared utilities consumed by the generator,
// session, and CLI layers.
//
// Key responsibilities:
//   - Context helpers that stamp session item IDs, stage names, and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper that let callers classify
//     failures (validation vs external vs timeout) without string matching.
//
// Use these helpers when wiring new integrations so error handling and
// observability stay uniform across commands.
package services
