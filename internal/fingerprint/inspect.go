package fingerprint

import (
	"fmt"
	"math"
	"strings"
)

// IssueKind classifies a quirk found by Inspect.
type IssueKind string

const (
	IssueEmptyWord         IssueKind = "empty_word"
	IssueWeightOutOfRange  IssueKind = "weight_out_of_range"
	IssueDuplicateWord     IssueKind = "duplicate_word"
	IssueConflictingWeight IssueKind = "conflicting_weight"
)

// Issue describes one quirk in a Result. Issues are informational; nothing in
// the scoring path rejects a Result because of them.
type Issue struct {
	Kind   IssueKind `json:"kind"`
	Index  int       `json:"index"`
	Word   string    `json:"word"`
	Detail string    `json:"detail"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s at %d (%q): %s", i.Kind, i.Index, i.Word, i.Detail)
}

// Inspect reports empty words, weights outside [0, 1], and repeated lowercase
// words. A repeated word whose weight differs from its previous occurrence is
// reported as IssueConflictingWeight since Normalize keeps only the later one.
func Inspect(r Result) []Issue {
	var issues []Issue
	lastSeen := make(map[string]int, len(r.Fingerprint))
	for idx, item := range r.Fingerprint {
		if strings.TrimSpace(item.Word) == "" {
			issues = append(issues, Issue{Kind: IssueEmptyWord, Index: idx, Word: item.Word, Detail: "word is blank"})
		}
		if math.IsNaN(item.Weight) || item.Weight < 0 || item.Weight > 1 {
			issues = append(issues, Issue{
				Kind:   IssueWeightOutOfRange,
				Index:  idx,
				Word:   item.Word,
				Detail: fmt.Sprintf("weight %v outside [0, 1]", item.Weight),
			})
		}
		key := Key(item.Word)
		prev, ok := lastSeen[key]
		lastSeen[key] = idx
		if !ok {
			continue
		}
		kind := IssueDuplicateWord
		detail := fmt.Sprintf("repeats item %d", prev)
		if r.Fingerprint[prev].Weight != item.Weight {
			kind = IssueConflictingWeight
			detail = fmt.Sprintf("weight %v overrides %v from item %d", item.Weight, r.Fingerprint[prev].Weight, prev)
		}
		issues = append(issues, Issue{Kind: kind, Index: idx, Word: item.Word, Detail: detail})
	}
	return issues
}
