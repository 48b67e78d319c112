package similarity

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Bucket is the qualitative band a score falls into.
type Bucket string

const (
	BucketHigh   Bucket = "high"
	BucketMedium Bucket = "medium"
	BucketLow    Bucket = "low"
)

const (
	// HighThreshold is the lowest score in the high bucket.
	HighThreshold = 0.8
	// MediumThreshold is the lowest score in the medium bucket.
	MediumThreshold = 0.5
)

// Classify maps a score to its bucket. Each bucket includes its lower bound.
// NaN lands in the low bucket.
func Classify(score float64) Bucket {
	switch {
	case score >= HighThreshold:
		return BucketHigh
	case score >= MediumThreshold:
		return BucketMedium
	default:
		return BucketLow
	}
}

func (b Bucket) String() string {
	return string(b)
}

// Label returns the display form of the bucket, e.g. "Medium".
func (b Bucket) Label() string {
	return cases.Title(language.English).String(string(b))
}

// Percent renders a score as a one decimal percentage.
func Percent(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}
