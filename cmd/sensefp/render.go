package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"sensefp/internal/discovery"
	"sensefp/internal/fingerprint"
	"sensefp/internal/session"
	"sensefp/internal/similarity"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiDim    = "\033[2m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func bucketColor(bucket similarity.Bucket) string {
	switch bucket {
	case similarity.BucketHigh:
		return ansiGreen
	case similarity.BucketMedium:
		return ansiYellow
	default:
		return ansiRed
	}
}

// formatScore renders "76.5% (Medium)", colored by bucket on a terminal.
func formatScore(score float64, colorize bool) string {
	bucket := similarity.Classify(score)
	value := fmt.Sprintf("%s (%s)", similarity.Percent(score), bucket.Label())
	if colorize {
		return bucketColor(bucket) + value + ansiReset
	}
	return value
}

// writeCard prints one fingerprint the way a result card reads: label, sense,
// discovery key, then each word with its weight.
func writeCard(w io.Writer, label string, result fingerprint.Result, colorize bool) {
	title := strings.TrimSpace(label)
	if title == "" {
		title = "Fingerprint"
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", len([]rune(title))))
	sense := strings.TrimSpace(result.SenseDescription)
	if sense == "" {
		sense = "(no sense description)"
	}
	fmt.Fprintf(w, "  Sense: %s\n", sense)
	key := discovery.ResultKey(result)
	if colorize {
		key = ansiDim + key + ansiReset
	}
	fmt.Fprintf(w, "  ID:    %s\n", key)
	if result.Empty() {
		fmt.Fprintln(w, "  (no words)")
	}
	for _, item := range result.Fingerprint {
		fmt.Fprintf(w, "  %-16s %.1f\n", item.Word, item.Weight)
	}
	fmt.Fprintln(w)
}

func writeFailedCard(w io.Writer, item session.Item, colorize bool) {
	fmt.Fprintln(w, item.Label)
	fmt.Fprintln(w, strings.Repeat("-", len([]rune(item.Label))))
	msg := fmt.Sprintf("  %s (%s)", session.FailureMessage, item.FailureKind)
	if colorize {
		msg = ansiRed + msg + ansiReset
	}
	fmt.Fprintln(w, msg)
	if item.Error != "" {
		fmt.Fprintf(w, "  %s\n", item.Error)
	}
	fmt.Fprintln(w)
}

// renderMatrix tabulates every comparison as Sense A / Sense B / affinity.
func renderMatrix(comparisons []similarity.Comparison, colorize bool) string {
	rows := make([][]string, 0, len(comparisons))
	for _, cmp := range comparisons {
		rows = append(rows, []string{
			cmp.A.Label,
			cmp.B.Label,
			formatScore(cmp.Score, colorize),
			fmt.Sprintf("%d", len(cmp.Analysis.Matches)),
		})
	}
	return renderTable(
		"Sense Comparison Matrix",
		[]string{"Sense A", "Sense B", "Affinity", "Shared"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
	)
}

// renderAttribution lists the per-word breakdown of one comparison.
func renderAttribution(cmp similarity.Comparison) string {
	analysis := cmp.Analysis
	rows := make([][]string, 0, len(analysis.Matches)+1)
	for _, m := range analysis.Matches {
		bonus := "-"
		if m.IsBonus {
			bonus = string(m.BonusType)
		}
		rows = append(rows, []string{
			m.Word,
			fmt.Sprintf("%.1f", m.WeightA),
			fmt.Sprintf("%.1f", m.WeightB),
			bonus,
			fmt.Sprintf("%.3f", m.Contribution),
		})
	}
	title := fmt.Sprintf("%s vs %s: intersection %.3f / min(%.1f, %.1f)",
		cmp.A.Label, cmp.B.Label, analysis.IntersectionSum, analysis.TotalWeightA, analysis.TotalWeightB)
	if len(rows) == 0 {
		return title + "\n  (no shared anchors)"
	}
	return renderTable(
		title,
		[]string{"Word", "Weight A", "Weight B", "Bonus", "Contribution"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignRight},
	)
}

func writeComparisons(w io.Writer, comparisons []similarity.Comparison, details, colorize bool) {
	if len(comparisons) == 0 {
		fmt.Fprintln(w, "Need at least two fingerprints to compare.")
		return
	}
	fmt.Fprintln(w, renderMatrix(comparisons, colorize))
	if !details {
		return
	}
	for _, cmp := range comparisons {
		fmt.Fprintln(w)
		fmt.Fprintln(w, renderAttribution(cmp))
	}
}
