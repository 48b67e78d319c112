package generator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"sensefp/internal/fingerprint"
)

// Input is a single extraction request. Context is optional disambiguating text.
type Input struct {
	Text    string
	Context string
}

// Generator produces a fingerprint for an input.
type Generator interface {
	Generate(ctx context.Context, in Input) (fingerprint.Result, error)
}

// Func adapts a plain function to the Generator interface.
type Func func(ctx context.Context, in Input) (fingerprint.Result, error)

// Generate calls f.
func (f Func) Generate(ctx context.Context, in Input) (fingerprint.Result, error) {
	return f(ctx, in)
}

// Tier is one relevance band offered to the model.
type Tier struct {
	Label       string
	Weight      float64
	Description string
}

// Config controls prompt rendering.
type Config struct {
	Model     string
	WordCount int
	Tiers     []Tier
}

// Validate checks that the config can render a usable prompt.
func (c Config) Validate() error {
	var problems []string
	if c.WordCount <= 0 {
		problems = append(problems, "word count must be positive")
	}
	if len(c.Tiers) == 0 {
		problems = append(problems, "at least one tier is required")
	}
	for i, tier := range c.Tiers {
		if strings.TrimSpace(tier.Label) == "" {
			problems = append(problems, fmt.Sprintf("tier %d: label is required", i+1))
		}
		if math.IsNaN(tier.Weight) || tier.Weight < 0 || tier.Weight > 1 {
			problems = append(problems, fmt.Sprintf("tier %d: weight %v outside [0, 1]", i+1, tier.Weight))
		}
	}
	if len(problems) > 0 {
		return errors.New("generator config: " + strings.Join(problems, "; "))
	}
	return nil
}
