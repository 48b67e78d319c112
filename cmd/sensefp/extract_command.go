package main

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"sensefp/internal/discovery"
	"sensefp/internal/generator"
	"sensefp/internal/services"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var contextText string
	var jsonOut bool
	var saveDir string

	cmd := &cobra.Command{
		Use:   "extract TEXT",
		Short: "Extract a fingerprint for a word or definition",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := ctx.generator()
			if err != nil {
				return err
			}
			cfg, _ := ctx.ensureConfig()

			input := generator.Input{Text: strings.Join(args, " "), Context: contextText}
			reqCtx := cmd.Context()
			if reqCtx == nil {
				reqCtx = context.Background()
			}
			reqCtx = services.WithRequestID(reqCtx, uuid.NewString())
			reqCtx, cancel := context.WithTimeout(reqCtx, cfg.RequestTimeout())
			defer cancel()

			result, err := gen.Generate(reqCtx, input)
			if err != nil {
				return err
			}
			if err := saveResult(cmd.ErrOrStderr(), saveDir, input.Text, result); err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, keyedEntry{
					Label:        input.Text,
					DiscoveryKey: discovery.ResultKey(result),
					Result:       result,
				})
			}
			w := cmd.OutOrStdout()
			writeCard(w, input.Text, result, shouldColorize(w))
			return nil
		},
	}

	cmd.Flags().StringVar(&contextText, "context", "", "Optional context or description to disambiguate the sense")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	cmd.Flags().StringVar(&saveDir, "save", "", "Directory to write the result JSON into")
	return cmd
}
