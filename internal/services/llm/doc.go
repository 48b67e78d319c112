// Package llm provides an OpenRouter compatible chat client that returns
// JSON payloads.
//
// The fingerprint generator uses it to ask a model for a sense description
// and its weighted anchor words. The client sends a system prompt and a user
// prompt with response_format json_object and returns the first non-empty
// content it finds (message content, streaming delta, legacy text, or tool
// call arguments).
//
// # Configuration
//
// Requires api_key and model, and optionally base_url, referer, title, and
// timeout. NewClient applies the OpenRouter endpoint when base_url is empty.
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.Complete: send a Request, receive a Completion with attempt details.
// Client.CompleteJSON: send system/user prompts, receive the JSON content.
// Client.HealthCheck: verify API key and model availability.
// DecodeLLMJSON: decode content while tolerating code fences and prose.
//
// # Retry Behaviour
//
// The client retries on HTTP 408/429/5xx errors, network timeouts, and empty
// content with exponential backoff (base 1s, max 10s, up to 5 attempts by
// default). Retry-After headers are honoured up to the max delay. Context
// cancellation aborts retries immediately.
package llm
