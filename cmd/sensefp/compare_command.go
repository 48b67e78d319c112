package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sensefp/internal/discovery"
	"sensefp/internal/fingerprint"
	"sensefp/internal/logging"
	"sensefp/internal/similarity"
)

type compareOutput struct {
	Strategy    string                  `json:"strategy"`
	Entries     []keyedEntry            `json:"entries"`
	Comparisons []similarity.Comparison `json:"comparisons"`
}

type keyedEntry struct {
	Label        string             `json:"label"`
	DiscoveryKey string             `json:"discovery_key"`
	Result       fingerprint.Result `json:"result"`
}

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var strategyName string
	var jsonOut bool
	var details bool

	cmd := &cobra.Command{
		Use:   "compare FILE FILE [FILE...]",
		Short: "Compare fingerprint result files pairwise",
		Long: `Compare two or more fingerprint JSON files. Each file holds a result of the
form {"sense_description": "...", "fingerprint": [{"word": "...", "weight": 1.0}]}.
Every pair is scored in argument order.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := ctx.strategy(strategyName)
			if err != nil {
				return err
			}
			entries, err := loadEntries(args)
			if err != nil {
				return err
			}
			logger := ctx.loggerValue()
			for _, entry := range entries {
				for _, issue := range fingerprint.Inspect(entry.Result) {
					logger.Debug("fingerprint quirk",
						logging.String("file", entry.ID),
						logging.String("issue", string(issue.Kind)),
						logging.String("detail", issue.String()),
					)
				}
			}

			comparisons := similarity.Pairwise(entries, strategy)
			if jsonOut {
				out := compareOutput{Strategy: strategy.Name(), Comparisons: comparisons}
				for _, entry := range entries {
					out.Entries = append(out.Entries, keyedEntry{
						Label:        entry.Label,
						DiscoveryKey: discovery.ResultKey(entry.Result),
						Result:       entry.Result,
					})
				}
				return writeJSON(cmd, out)
			}

			w := cmd.OutOrStdout()
			colorize := shouldColorize(w)
			if strategy.Name() != similarity.StrategyTiered {
				fmt.Fprintf(w, "Strategy: %s\n", strategy.Name())
			}
			writeComparisons(w, comparisons, details, colorize)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategyName, "strategy", "", "Scoring strategy ("+strings.Join(similarity.StrategyNames(), ", ")+")")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	cmd.Flags().BoolVar(&details, "details", false, "Show the per-word attribution for each pair")
	return cmd
}

func loadEntries(paths []string) ([]similarity.Entry, error) {
	entries := make([]similarity.Entry, 0, len(paths))
	for _, path := range paths {
		result, err := fingerprint.ReadFile(path)
		if err != nil {
			return nil, err
		}
		label := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		entries = append(entries, similarity.Entry{ID: path, Label: label, Result: result})
	}
	return entries, nil
}
