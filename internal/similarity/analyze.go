package similarity

import (
	"math"
	"sort"

	"sensefp/internal/fingerprint"
)

const (
	// WeightTolerance is the largest weight difference still treated as equal.
	WeightTolerance = 0.001
	// CoreWeight is the minimum weight of a tier one anchor. Either side may
	// reach it when the two weights are equal within WeightTolerance.
	CoreWeight = 0.9
	// Tier1Multiplier boosts equal-weight core anchors.
	Tier1Multiplier = 1.3
	// CrossTierMultiplier boosts anchors whose weights differ between sides.
	CrossTierMultiplier = 1.2
)

// BonusType names the boost applied to a match.
type BonusType string

const (
	BonusNone  BonusType = ""
	BonusCross BonusType = "cross"
	BonusTier1 BonusType = "tier1"
)

// Match attributes part of the intersection to one shared word.
type Match struct {
	Word         string    `json:"word"`
	WeightA      float64   `json:"weightA"`
	WeightB      float64   `json:"weightB"`
	Contribution float64   `json:"contribution"`
	IsBonus      bool      `json:"isBonus"`
	BonusType    BonusType `json:"bonusType,omitempty"`
}

// Analysis is the full result of comparing two fingerprints.
type Analysis struct {
	Score           float64 `json:"score"`
	IntersectionSum float64 `json:"intersectionSum"`
	TotalWeightA    float64 `json:"totalWeightA"`
	TotalWeightB    float64 `json:"totalWeightB"`
	Matches         []Match `json:"matches"`
}

// Bucket classifies the analysis score.
func (a Analysis) Bucket() Bucket {
	return Classify(a.Score)
}

// Analyze compares a and b with the tiered bonus formula. Matches are sorted by
// contribution descending; ties keep the order in which words first appear in a.
func Analyze(a, b fingerprint.Result) Analysis {
	mapA := fingerprint.Normalize(a)
	mapB := fingerprint.Normalize(b)

	matches := make([]Match, 0)
	for _, word := range a.Words() {
		weightA := mapA[word]
		weightB, ok := mapB[word]
		if !ok || weightA <= 0 || weightB <= 0 {
			continue
		}
		matches = append(matches, scoreMatch(word, weightA, weightB))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Contribution > matches[j].Contribution
	})
	// Summing in sorted order makes the total independent of argument order.
	var intersection float64
	for _, match := range matches {
		intersection += match.Contribution
	}

	totalA := fingerprint.TotalWeight(a.Fingerprint)
	totalB := fingerprint.TotalWeight(b.Fingerprint)
	return Analysis{
		Score:           overlapScore(intersection, totalA, totalB),
		IntersectionSum: intersection,
		TotalWeightA:    totalA,
		TotalWeightB:    totalB,
		Matches:         matches,
	}
}

func scoreMatch(word string, weightA, weightB float64) Match {
	average := (weightA + weightB) / 2
	match := Match{Word: word, WeightA: weightA, WeightB: weightB}
	switch {
	case math.Abs(weightA-weightB) > WeightTolerance:
		match.Contribution = average * CrossTierMultiplier
		match.IsBonus = true
		match.BonusType = BonusCross
	case math.Max(weightA, weightB) >= CoreWeight:
		match.Contribution = average * Tier1Multiplier
		match.IsBonus = true
		match.BonusType = BonusTier1
	default:
		match.Contribution = average
	}
	return match
}

// overlapScore divides the intersection by the smaller total and clamps the
// ratio into [0, 1]. A zero smaller total scores 0.
func overlapScore(intersection, totalA, totalB float64) float64 {
	minTotal := math.Min(totalA, totalB)
	if minTotal == 0 {
		return 0
	}
	return clamp01(intersection / minTotal)
}

// orderedSum adds terms largest first so the result does not depend on the
// order the terms were collected in. terms is sorted in place.
func orderedSum(terms []float64) float64 {
	sort.Sort(sort.Reverse(sort.Float64Slice(terms)))
	var sum float64
	for _, v := range terms {
		sum += v
	}
	return sum
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	case v < 0:
		return 0
	default:
		return v
	}
}
