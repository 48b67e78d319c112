package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"sensefp/internal/config"
	"sensefp/internal/generator"
	"sensefp/internal/logging"
	"sensefp/internal/services/llm"
	"sensefp/internal/session"
	"sensefp/internal/similarity"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(c.configFlagValue())
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

func (c *commandContext) configFlagValue() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

// loggerValue builds the process logger from config, falling back to a
// discard logger when the config or log directory is unusable.
func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) llmClient() (*llm.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireLLM(); err != nil {
		return nil, err
	}
	settings := cfg.GetLLM()
	return llm.NewClient(llm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Referer: settings.Referer,
		Title:   settings.Title,
		Timeout: settings.Timeout,
	}, llm.WithLogger(logging.NewComponentLogger(c.loggerValue(), "llm"))), nil
}

func (c *commandContext) generator() (generator.Generator, error) {
	client, err := c.llmClient()
	if err != nil {
		return nil, err
	}
	cfg := c.config
	tiers := make([]generator.Tier, 0, len(cfg.Generator.Tiers))
	for _, tier := range cfg.Generator.Tiers {
		tiers = append(tiers, generator.Tier{Label: tier.Label, Weight: tier.Weight, Description: tier.Description})
	}
	return generator.NewLLM(client, generator.Config{
		Model:     client.Model(),
		WordCount: cfg.Generator.WordCount,
		Tiers:     tiers,
	}, c.loggerValue())
}

// strategy resolves the --strategy flag, falling back to the configured default.
func (c *commandContext) strategy(flagValue string) (similarity.Strategy, error) {
	name := strings.TrimSpace(flagValue)
	if name == "" {
		if cfg, err := c.ensureConfig(); err == nil && cfg != nil {
			name = cfg.Compare.Strategy
		}
	}
	strategy, err := similarity.StrategyByName(name)
	if err != nil {
		return nil, fmt.Errorf("resolve strategy: %w", err)
	}
	return strategy, nil
}

func (c *commandContext) sessionRunner(strategy similarity.Strategy) (*session.Runner, error) {
	gen, err := c.generator()
	if err != nil {
		return nil, err
	}
	cfg := c.config
	return session.New(gen, session.Options{
		Concurrency:    cfg.Session.Concurrency,
		Stagger:        cfg.StaggerInterval(),
		RequestTimeout: cfg.RequestTimeout(),
		Strategy:       strategy,
		Logger:         c.loggerValue(),
	}), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
