// Package generator turns a word or definition into a semantic fingerprint.
//
// The LLM implementation renders a system prompt from the configured relevance
// tiers, sends the input through the chat completion client, and decodes the
// JSON result leniently: word counts and tier order are not enforced, and any
// quirks reported by fingerprint.Inspect are logged at debug level.
package generator
