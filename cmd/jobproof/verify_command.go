package main

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"jobproof/internal/artifacts"
)

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	var manifestPath string
	var baseDir string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "verify",
		Short:       "Re-verify recorded artifact hashes against files on disk",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			base := baseDir
			if base == "" {
				base = filepath.Dir(manifestPath)
			}

			records, malformed, err := artifacts.LoadManifest(manifestPath)
			if err != nil {
				return err
			}
			ok, mismatches := artifacts.Verify(base, records)
			mismatches = append(malformed, mismatches...)
			ok = ok && len(malformed) == 0

			if jsonOut {
				if err := writeJSON(cmd, map[string]any{"ok": ok, "mismatches": mismatches}); err != nil {
					return err
				}
			} else {
				printVerifyStatus(cmd.OutOrStdout(), ok, records, mismatches)
			}

			if !ok {
				return fmt.Errorf("verification failed: %d mismatch(es)", len(mismatches))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Path to the verifiable-artifacts manifest")
	cmd.Flags().StringVar(&baseDir, "base-dir", "", "Directory artifact paths are relative to (defaults to the manifest's directory)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the verification result as JSON")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}

// printVerifyStatus writes one status line per artifact in stable key order.
func printVerifyStatus(out io.Writer, ok bool, records map[string]artifacts.Record, mismatches []artifacts.Mismatch) {
	byKey := make(map[string]artifacts.Mismatch, len(mismatches))
	for _, m := range mismatches {
		byKey[m.Key] = m
	}

	keys := make([]string, 0, len(records)+len(mismatches))
	for k := range records {
		keys = append(keys, k)
	}
	for _, m := range mismatches {
		if _, known := records[m.Key]; !known {
			keys = append(keys, m.Key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		if m, bad := byKey[key]; bad {
			fmt.Fprintf(out, "FAIL  %-24s %s\n", key, m.Reason)
			continue
		}
		fmt.Fprintf(out, "ok    %-24s %s\n", key, records[key].SHA256)
	}
	if ok {
		fmt.Fprintln(out, "verification ok")
	}
}
