package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"jobproof/internal/ledger"
)

func newLedgerCommand(ctx *commandContext) *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect the append-only run ledger",
	}
	ledgerCmd.AddCommand(newLedgerListCommand(ctx))
	ledgerCmd.AddCommand(newLedgerLatestCommand(ctx))
	return ledgerCmd
}

func newLedgerListCommand(ctx *commandContext) *cobra.Command {
	var candidateID string
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs for a candidate, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ledger.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(cmd.Context(), candidateID, limit)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, records)
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					rec.RunID,
					rec.Status,
					rec.CreatedAt.UTC().Format(time.RFC3339),
					rec.GitRevision,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Run", "Status", "Created", "Revision"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&candidateID, "candidate", "", "Candidate identifier")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Show at most this many runs (0 = all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit ledger records as JSON")
	_ = cmd.MarkFlagRequired("candidate")

	return cmd
}

func newLedgerLatestCommand(ctx *commandContext) *cobra.Command {
	var candidateID string

	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Show the most recent successful run for a candidate",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ledger.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := store.LatestSuccessful(cmd.Context(), candidateID)
			if err != nil {
				return err
			}
			if rec == nil {
				return fmt.Errorf("no successful runs recorded for candidate %q", candidateID)
			}
			return writeJSON(cmd, rec)
		},
	}

	cmd.Flags().StringVar(&candidateID, "candidate", "", "Candidate identifier")
	_ = cmd.MarkFlagRequired("candidate")

	return cmd
}
