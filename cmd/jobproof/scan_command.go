package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jobproof/internal/redaction"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var allowOverride bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "scan <file>",
		Short:       "Scan a file for secret-like patterns before publication",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			findings := redaction.Scan(string(data))

			if jsonOut {
				if err := writeJSON(cmd, findings); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				for _, f := range findings {
					fmt.Fprintf(out, "%s at offset %d: %s\n", f.Pattern, f.Offset, f.Snippet)
				}
				if len(findings) == 0 {
					fmt.Fprintln(out, "no secrets detected")
				}
			}

			return redaction.AssertNoSecrets(path, string(data), allowOverride)
		},
	}

	cmd.Flags().BoolVar(&allowOverride, "allow-override", false, "Exit zero even when findings exist")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit findings as JSON")

	return cmd
}
