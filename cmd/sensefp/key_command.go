package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sensefp/internal/discovery"
	"sensefp/internal/fingerprint"
)

func newKeyCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "key FILE...",
		Short:       "Print the discovery key of fingerprint files",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			type keyRow struct {
				File string `json:"file"`
				Key  string `json:"discovery_key"`
			}
			rows := make([]keyRow, 0, len(args))
			for _, path := range args {
				result, err := fingerprint.ReadFile(path)
				if err != nil {
					return err
				}
				rows = append(rows, keyRow{File: path, Key: discovery.ResultKey(result)})
			}
			if jsonOut {
				return writeJSON(cmd, rows)
			}
			out := cmd.OutOrStdout()
			for _, row := range rows {
				fmt.Fprintf(out, "%s  %s\n", row.Key, row.File)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}
