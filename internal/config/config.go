package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"sensefp/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// LLM contains the chat completion connection settings.
type LLM struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Referer        string `toml:"referer"`
	Title          string `toml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Tier is one relevance band offered to the generator.
type Tier struct {
	Label       string  `toml:"label"`
	Weight      float64 `toml:"weight"`
	Description string  `toml:"description"`
}

// Generator contains the fingerprint generation settings.
type Generator struct {
	WordCount int    `toml:"word_count"`
	Tiers     []Tier `toml:"tiers"`
}

// Session contains batch generation settings.
type Session struct {
	Concurrency           int `toml:"concurrency"`
	StaggerMillis         int `toml:"stagger_ms"`
	RequestTimeoutSeconds int `toml:"request_timeout_seconds"`
}

// Compare contains comparison settings.
type Compare struct {
	Strategy string `toml:"strategy"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for sensefp.
//
// Configuration sections by subsystem:
//   - LLM: chat completion endpoint used to extract fingerprints
//   - Generator: word count and tier bands rendered into the prompt
//   - Session: fan-out limits for batch generation
//   - Compare: default similarity strategy
//   - Logging: log format, level, and optional file directory
type Config struct {
	LLM       LLM       `toml:"llm"`
	Generator Generator `toml:"generator"`
	Session   Session   `toml:"session"`
	Compare   Compare   `toml:"compare"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned
// config has all fields trimmed and defaulted.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if err := fileutil.WriteAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// LLMConfig contains the resolved chat completion settings.
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Referer string
	Title   string
	Timeout time.Duration
}

// GetLLM returns the LLM connection settings.
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		APIKey:  strings.TrimSpace(c.LLM.APIKey),
		BaseURL: strings.TrimSpace(c.LLM.BaseURL),
		Model:   strings.TrimSpace(c.LLM.Model),
		Referer: strings.TrimSpace(c.LLM.Referer),
		Title:   strings.TrimSpace(c.LLM.Title),
		Timeout: time.Duration(c.LLM.TimeoutSeconds) * time.Second,
	}
}

// StaggerInterval is the minimum gap between generation starts in a session.
func (c *Config) StaggerInterval() time.Duration {
	return time.Duration(c.Session.StaggerMillis) * time.Millisecond
}

// RequestTimeout bounds a single generation inside a session.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Session.RequestTimeoutSeconds) * time.Second
}
