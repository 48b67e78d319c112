package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeLLM()
	c.normalizeGenerator()
	c.normalizeSession()
	c.Compare.Strategy = strings.ToLower(strings.TrimSpace(c.Compare.Strategy))
	if c.Compare.Strategy == "" {
		c.Compare.Strategy = defaultCompareStrategy
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeLLM() {
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	c.LLM.Referer = strings.TrimSpace(c.LLM.Referer)
	if c.LLM.Referer == "" {
		c.LLM.Referer = defaultLLMReferer
	}
	c.LLM.Title = strings.TrimSpace(c.LLM.Title)
	if c.LLM.Title == "" {
		c.LLM.Title = defaultLLMTitle
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("SENSEFP_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("OPENROUTER_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeGenerator() {
	if c.Generator.WordCount <= 0 {
		c.Generator.WordCount = defaultWordCount
	}
	if len(c.Generator.Tiers) == 0 {
		c.Generator.Tiers = DefaultTiers()
	}
	for i := range c.Generator.Tiers {
		c.Generator.Tiers[i].Label = strings.TrimSpace(c.Generator.Tiers[i].Label)
		c.Generator.Tiers[i].Description = strings.TrimSpace(c.Generator.Tiers[i].Description)
	}
}

func (c *Config) normalizeSession() {
	if c.Session.Concurrency <= 0 {
		c.Session.Concurrency = defaultSessionConcurrency
	}
	if c.Session.StaggerMillis < 0 {
		c.Session.StaggerMillis = 0
	}
	if c.Session.RequestTimeoutSeconds <= 0 {
		c.Session.RequestTimeoutSeconds = defaultSessionRequestTimeout
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
