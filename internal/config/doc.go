// Package config loads, normalizes, and validates sensefp configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SENSEFP_API_KEY and OPENROUTER_API_KEY. The Config type centralizes the
// generator, session, comparison, and logging knobs the CLI needs.
//
// Always obtain settings through this package so downstream code receives
// trimmed values, canonical log formats, and clear validation errors.
package config
