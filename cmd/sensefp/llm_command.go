package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const healthCheckTimeout = 30 * time.Second

func newLLMCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "llm",
		Short: "LLM connection tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "health",
		Short: "Verify the configured API key and model respond",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.llmClient()
			if err != nil {
				return err
			}
			base := cmd.Context()
			if base == nil {
				base = context.Background()
			}
			reqCtx, cancel := context.WithTimeout(base, healthCheckTimeout)
			defer cancel()

			start := time.Now()
			if err := client.HealthCheck(reqCtx); err != nil {
				return fmt.Errorf("llm health check failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "LLM healthy (model %s, %s)\n", client.Model(), time.Since(start).Round(time.Millisecond))
			return nil
		},
	})
	return cmd
}
