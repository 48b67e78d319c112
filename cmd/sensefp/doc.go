// Package main hosts the sensefp CLI entrypoint and command graph.
//
// The Cobra command tree compares fingerprint files, computes discovery keys,
// extracts new fingerprints through the configured LLM, and runs the built-in
// scenario suites. Configuration and logger setup are resolved once per
// invocation through commandContext so subcommands only deal with rendering.
package main
