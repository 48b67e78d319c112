package generator

import (
	"fmt"
	"strings"
)

// SystemPrompt renders the extraction instructions for cfg.
func SystemPrompt(cfg Config) string {
	var b strings.Builder
	b.WriteString(`# Role
You are a Semantic Fingerprint Generator for a linguistic engine. Your task is to extract the core "Sense" (the underlying concept) from any input and represent it as a structured fingerprint.

# Fingerprint Protocol
1. Identify the unique Semantic Sense of the input.
`)
	fmt.Fprintf(&b, "2. Generate EXACTLY %d English synonyms/related words that define this specific sense.\n", cfg.WordCount)
	b.WriteString("3. Assign a Relevance Tier to each word:\n")
	for i, tier := range cfg.Tiers {
		fmt.Fprintf(&b, "   - Tier %d (%s): %.1f", i+1, strings.TrimSpace(tier.Label), tier.Weight)
		if desc := strings.TrimSpace(tier.Description); desc != "" {
			fmt.Fprintf(&b, " (%s)", desc)
		}
		b.WriteString("\n")
	}
	b.WriteString(`4. Constraints:
   - Only output English words for the fingerprint, regardless of input language.
   - Be highly specific to the context/sense provided.
   - Use Lemma form (e.g., 'jump' instead of 'jumping').

# Output Format (JSON)
{
  "sense_description": "Briefly describe the identified sense",
  "fingerprint": [
`)
	for i := range cfg.WordCount {
		sep := ","
		if i == cfg.WordCount-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "    {\"word\": \"word%d\", \"weight\": %.1f}%s\n", i+1, exampleWeight(cfg, i), sep)
	}
	b.WriteString("  ]\n}\n")
	return b.String()
}

// exampleWeight spreads the tiers across the sample output: the first word is
// always the top tier and the remaining words step down evenly.
func exampleWeight(cfg Config, index int) float64 {
	tiers := len(cfg.Tiers)
	if tiers == 0 {
		return 0
	}
	if cfg.WordCount <= 1 || tiers == 1 {
		return cfg.Tiers[0].Weight
	}
	// ceil(index*(tiers-1)/(words-1))
	tier := (index*(tiers-1) + cfg.WordCount - 2) / (cfg.WordCount - 1)
	return cfg.Tiers[min(tier, tiers-1)].Weight
}

func userPrompt(in Input) string {
	prompt := "Input: " + strings.TrimSpace(in.Text)
	if ctx := strings.TrimSpace(in.Context); ctx != "" {
		prompt += "\nContext/Description: " + ctx
	}
	return prompt
}
