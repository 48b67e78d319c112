package similarity

import "sensefp/internal/fingerprint"

// Entry is one labeled fingerprint taking part in a pairwise comparison.
type Entry struct {
	ID     string             `json:"id"`
	Label  string             `json:"label"`
	Result fingerprint.Result `json:"result"`
}

// Comparison is the outcome for one pair of entries. Analysis always carries
// the tiered attribution; Score is produced by the selected strategy.
type Comparison struct {
	A        Entry    `json:"a"`
	B        Entry    `json:"b"`
	Strategy string   `json:"strategy"`
	Score    float64  `json:"score"`
	Bucket   Bucket   `json:"bucket"`
	Analysis Analysis `json:"analysis"`
}

// Pairwise compares every combination i < j of entries in input order. A nil
// strategy selects Tiered.
func Pairwise(entries []Entry, strategy Strategy) []Comparison {
	if strategy == nil {
		strategy = Tiered{}
	}
	if len(entries) < 2 {
		return nil
	}
	out := make([]Comparison, 0, len(entries)*(len(entries)-1)/2)
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			out = append(out, Compare(entries[i], entries[j], strategy))
		}
	}
	return out
}

// Compare builds the Comparison for a single pair.
func Compare(a, b Entry, strategy Strategy) Comparison {
	if strategy == nil {
		strategy = Tiered{}
	}
	analysis := Analyze(a.Result, b.Result)
	score := analysis.Score
	if strategy.Name() != StrategyTiered {
		score = strategy.Score(a.Result, b.Result)
	}
	return Comparison{
		A:        a,
		B:        b,
		Strategy: strategy.Name(),
		Score:    score,
		Bucket:   Classify(score),
		Analysis: analysis,
	}
}
