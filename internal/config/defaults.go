package config

const (
	defaultConfigPath            = "~/.config/sensefp/config.toml"
	projectConfigName            = "sensefp.toml"
	defaultLLMBaseURL            = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel              = "google/gemini-3-flash-preview"
	defaultLLMReferer            = "https://github.com/sensefp/sensefp"
	defaultLLMTitle              = "sensefp"
	defaultLLMTimeoutSeconds     = 60
	defaultWordCount             = 5
	defaultSessionConcurrency    = 4
	defaultSessionStaggerMillis  = 200
	defaultSessionRequestTimeout = 90
	defaultCompareStrategy       = "tiered"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// DefaultTiers returns the Core/Strong/Related relevance bands.
func DefaultTiers() []Tier {
	return []Tier{
		{Label: "Core", Weight: 1.0, Description: "Direct synonyms or the defining category of the concept."},
		{Label: "Strong", Weight: 0.7, Description: "Key attributes, functions, or closely associated entities."},
		{Label: "Related", Weight: 0.3, Description: "Broader context, typical settings, or looser associations."},
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Generator: Generator{
			WordCount: defaultWordCount,
			Tiers:     DefaultTiers(),
		},
		Session: Session{
			Concurrency:           defaultSessionConcurrency,
			StaggerMillis:         defaultSessionStaggerMillis,
			RequestTimeoutSeconds: defaultSessionRequestTimeout,
		},
		Compare: Compare{
			Strategy: defaultCompareStrategy,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
