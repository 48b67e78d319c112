package similarity

import (
	"math"

	"sensefp/internal/fingerprint"
)

// Cosine treats each normalized map as a weight vector and returns the cosine
// of the angle between them. Zero-norm vectors score 0.
type Cosine struct{}

func (Cosine) Name() string { return StrategyCosine }

func (Cosine) Score(a, b fingerprint.Result) float64 {
	mapA := fingerprint.Normalize(a)
	mapB := fingerprint.Normalize(b)
	normA, normB := vectorNorm(mapA), vectorNorm(mapB)
	if normA == 0 || normB == 0 {
		return 0
	}
	var products []float64
	for _, word := range a.Words() {
		if weightB, ok := mapB[word]; ok {
			products = append(products, mapA[word]*weightB)
		}
	}
	dot := orderedSum(products)
	if dot == 0 {
		return 0
	}
	return clamp01(dot / (normA * normB))
}

func vectorNorm(weights map[string]float64) float64 {
	squares := make([]float64, 0, len(weights))
	for _, w := range weights {
		squares = append(squares, w*w)
	}
	return math.Sqrt(orderedSum(squares))
}
