package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sensefp/internal/generator"
	"sensefp/internal/scenario"
	"sensefp/internal/session"
)

func newScenarioCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Built-in comparison suites",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newScenarioListCommand())
	cmd.AddCommand(newScenarioRunCommand(ctx))
	return cmd
}

func newScenarioListCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "list",
		Short:       "List the built-in suites",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			all := scenario.All()
			rows := make([][]string, 0, len(all))
			for _, s := range all {
				rows = append(rows, []string{s.ID, s.Title, fmt.Sprintf("%d", len(s.Items)), s.Description})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable("", []string{"ID", "Title", "Inputs", "Description"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}))
			return nil
		},
	}
}

func newScenarioRunCommand(ctx *commandContext) *cobra.Command {
	var strategyName string
	var jsonOut bool
	var details bool
	var saveDir string

	cmd := &cobra.Command{
		Use:   "run ID",
		Short: "Generate fingerprints for a suite and compare them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suite, err := scenario.Lookup(args[0])
			if err != nil {
				return err
			}
			strategy, err := ctx.strategy(strategyName)
			if err != nil {
				return err
			}
			runner, err := ctx.sessionRunner(strategy)
			if err != nil {
				return err
			}

			requests := make([]session.Request, 0, len(suite.Items))
			for _, item := range suite.Items {
				requests = append(requests, session.Request{
					Label: item.Label,
					Input: generator.Input{Text: item.Input, Context: item.Context},
				})
			}
			runCtx := cmd.Context()
			if runCtx == nil {
				runCtx = context.Background()
			}
			report, err := runner.Run(runCtx, requests)
			if err != nil {
				return err
			}

			for _, item := range report.Completed() {
				if err := saveResult(cmd.ErrOrStderr(), saveDir, item.Label, item.Result); err != nil {
					return err
				}
			}
			if jsonOut {
				return writeJSON(cmd, report)
			}
			w := cmd.OutOrStdout()
			colorize := shouldColorize(w)
			fmt.Fprintln(w, suite.Title)
			fmt.Fprintln(w, suite.Description)
			fmt.Fprintln(w)
			for _, item := range report.Items {
				if item.Status == session.StatusCompleted {
					writeCard(w, item.Label, item.Result, colorize)
					continue
				}
				writeFailedCard(w, item, colorize)
			}
			writeComparisons(w, report.Comparisons, details, colorize)
			if len(report.Completed()) == 0 {
				return fmt.Errorf("scenario %s: all %d generations failed", suite.ID, len(report.Items))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&strategyName, "strategy", "", "Scoring strategy")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	cmd.Flags().BoolVar(&details, "details", false, "Show the per-word attribution for each pair")
	cmd.Flags().StringVar(&saveDir, "save", "", "Directory to write each completed result into")
	return cmd
}
