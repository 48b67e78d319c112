package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"sensefp/internal/similarity"
)

var validLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate ensures the configuration is usable. A missing API key is not an
// error here; commands that call the LLM check it through RequireLLM.
func (c *Config) Validate() error {
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateGenerator(); err != nil {
		return err
	}
	if err := c.validateSession(); err != nil {
		return err
	}
	if _, err := similarity.StrategyByName(c.Compare.Strategy); err != nil {
		return fmt.Errorf("compare.strategy: %w", err)
	}
	if !contains(validLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level %q is not supported (use one of: debug, info, warn, error)", c.Logging.Level)
	}
	return nil
}

// RequireLLM reports an actionable error when no API key is available.
func (c *Config) RequireLLM() error {
	if strings.TrimSpace(c.LLM.APIKey) != "" {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	return fmt.Errorf("llm.api_key is required. Set SENSEFP_API_KEY or OPENROUTER_API_KEY, or edit %s (create with 'sensefp config init')", defaultPath)
}

func (c *Config) validateLLM() error {
	if !strings.HasPrefix(c.LLM.BaseURL, "http://") && !strings.HasPrefix(c.LLM.BaseURL, "https://") {
		return fmt.Errorf("llm.base_url must be an http(s) URL, got %q", c.LLM.BaseURL)
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return errors.New("llm.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateGenerator() error {
	if c.Generator.WordCount <= 0 {
		return errors.New("generator.word_count must be positive")
	}
	if len(c.Generator.Tiers) == 0 {
		return errors.New("generator.tiers must include at least one tier")
	}
	seen := make(map[string]struct{}, len(c.Generator.Tiers))
	for i, tier := range c.Generator.Tiers {
		if tier.Label == "" {
			return fmt.Errorf("generator.tiers[%d].label must be set", i)
		}
		key := strings.ToLower(tier.Label)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("generator.tiers[%d].label %q is duplicated", i, tier.Label)
		}
		seen[key] = struct{}{}
		if math.IsNaN(tier.Weight) || tier.Weight < 0 || tier.Weight > 1 {
			return fmt.Errorf("generator.tiers[%d].weight must be between 0 and 1", i)
		}
	}
	return nil
}

func (c *Config) validateSession() error {
	if err := ensurePositiveMap(map[string]int{
		"session.concurrency":             c.Session.Concurrency,
		"session.request_timeout_seconds": c.Session.RequestTimeoutSeconds,
	}); err != nil {
		return err
	}
	if c.Session.StaggerMillis < 0 {
		return errors.New("session.stagger_ms must be >= 0")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
