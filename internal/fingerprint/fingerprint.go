package fingerprint

import (
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Item is one semantic anchor and its relevance weight in [0, 1].
type Item struct {
	Word   string  `json:"word"`
	Weight float64 `json:"weight"`
}

// Result is the extracted sense of a single input.
type Result struct {
	SenseDescription string `json:"sense_description"`
	Fingerprint      []Item `json:"fingerprint"`
}

// Key returns the normalized map key for a word. It applies full Unicode
// lowercasing, including final sigma and the dotted capital I expansion.
func Key(word string) string {
	return cases.Lower(language.Und).String(word)
}

// Normalize builds the lowercase word to weight map for r. Later duplicates
// overwrite earlier ones. The returned map is never nil.
func Normalize(r Result) map[string]float64 {
	return NormalizeItems(r.Fingerprint)
}

// NormalizeItems is Normalize over a bare item slice.
func NormalizeItems(items []Item) map[string]float64 {
	out := make(map[string]float64, len(items))
	for _, item := range items {
		out[Key(item.Word)] = item.Weight
	}
	return out
}

// Words returns the distinct lowercase words of r in first occurrence order.
func (r Result) Words() []string {
	seen := make(map[string]struct{}, len(r.Fingerprint))
	words := make([]string, 0, len(r.Fingerprint))
	for _, item := range r.Fingerprint {
		key := Key(item.Word)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		words = append(words, key)
	}
	return words
}

// TotalWeight sums the raw item weights, duplicates included. Weights are
// added largest first so the total does not depend on item order.
func TotalWeight(items []Item) float64 {
	weights := make([]float64, 0, len(items))
	for _, item := range items {
		weights = append(weights, item.Weight)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(weights)))
	var total float64
	for _, w := range weights {
		total += w
	}
	return total
}

// Len returns the number of raw items.
func (r Result) Len() int {
	return len(r.Fingerprint)
}

// Empty reports whether r carries no items.
func (r Result) Empty() bool {
	return len(r.Fingerprint) == 0
}
