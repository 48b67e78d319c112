package similarity

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"sensefp/internal/fingerprint"
)

// ErrUnknownStrategy is returned by StrategyByName for unregistered names.
var ErrUnknownStrategy = errors.New("unknown similarity strategy")

const (
	StrategyTiered    = "tiered"
	StrategyFlatBonus = "flat-bonus"
	StrategyJaccard   = "jaccard"
	StrategyCosine    = "cosine"
)

// FlatBonusMultiplier is the boost every shared anchor receives under the
// flat-bonus regime.
const FlatBonusMultiplier = 1.3

// Strategy scores two fingerprints into [0, 1].
type Strategy interface {
	Name() string
	Score(a, b fingerprint.Result) float64
}

// Tiered is the default strategy backed by Analyze.
type Tiered struct{}

func (Tiered) Name() string { return StrategyTiered }

func (Tiered) Score(a, b fingerprint.Result) float64 {
	return Analyze(a, b).Score
}

// FlatBonus applies a flat 1.3 boost to the average weight of every shared
// anchor and divides by the smaller raw total.
type FlatBonus struct{}

func (FlatBonus) Name() string { return StrategyFlatBonus }

func (FlatBonus) Score(a, b fingerprint.Result) float64 {
	mapA := fingerprint.Normalize(a)
	mapB := fingerprint.Normalize(b)
	var terms []float64
	for _, word := range a.Words() {
		weightA, weightB := mapA[word], mapB[word]
		if weightA > 0 && weightB > 0 {
			terms = append(terms, ((weightA+weightB)/2)*FlatBonusMultiplier)
		}
	}
	return overlapScore(orderedSum(terms), fingerprint.TotalWeight(a.Fingerprint), fingerprint.TotalWeight(b.Fingerprint))
}

// Jaccard is the weighted Jaccard index over the normalized maps.
type Jaccard struct{}

func (Jaccard) Name() string { return StrategyJaccard }

func (Jaccard) Score(a, b fingerprint.Result) float64 {
	mapA := fingerprint.Normalize(a)
	mapB := fingerprint.Normalize(b)
	words := unionWords(a, b)
	mins := make([]float64, 0, len(words))
	maxes := make([]float64, 0, len(words))
	for _, word := range words {
		weightA, weightB := mapA[word], mapB[word]
		mins = append(mins, math.Min(weightA, weightB))
		maxes = append(maxes, math.Max(weightA, weightB))
	}
	minSum, maxSum := orderedSum(mins), orderedSum(maxes)
	if maxSum == 0 {
		return 0
	}
	return clamp01(minSum / maxSum)
}

func unionWords(a, b fingerprint.Result) []string {
	words := a.Words()
	seen := make(map[string]struct{}, len(words))
	for _, word := range words {
		seen[word] = struct{}{}
	}
	for _, word := range b.Words() {
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}
	return words
}

var strategies = map[string]Strategy{
	StrategyTiered:    Tiered{},
	StrategyFlatBonus: FlatBonus{},
	StrategyJaccard:   Jaccard{},
	StrategyCosine:    Cosine{},
}

// StrategyByName resolves a configured strategy name. An empty name selects
// the tiered strategy.
func StrategyByName(name string) (Strategy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Tiered{}, nil
	}
	strategy, ok := strategies[key]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownStrategy, name, strings.Join(StrategyNames(), ", "))
	}
	return strategy, nil
}

// StrategyNames lists the registered strategy names in sorted order.
func StrategyNames() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
