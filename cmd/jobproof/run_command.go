package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"jobproof/internal/ledger"
	"jobproof/internal/logging"
	"jobproof/internal/pipeline"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var jobsPath string
	var profilePath string
	var runID string
	var gitRevision string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Score a job set, emit verifiable artifacts, and record the run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			records, err := loadJobs(jobsPath)
			if err != nil {
				return err
			}
			profile, err := pipeline.LoadProfile(profilePath)
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			store, err := ledger.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runner, err := pipeline.NewRunner(cfg, logger, store)
			if err != nil {
				return err
			}

			result, err := runner.Run(cmd.Context(), records, profile, pipeline.Options{
				RunID:          runID,
				GitRevision:    gitRevision,
				UpdateBaseline: true,
				RecordLedger:   true,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s complete: %d jobs ranked\n", result.RunID, len(result.Ranked))
			fmt.Fprintf(out, "Artifacts: %s\n", result.OutputDir)
			rows := [][]string{
				{"new", strconv.Itoa(result.Delta.NewJobCount)},
				{"removed", strconv.Itoa(result.Delta.RemovedJobCount)},
				{"changed", strconv.Itoa(result.Delta.ChangedJobCount)},
				{"unchanged", strconv.Itoa(result.Delta.UnchangedJobCount)},
			}
			fmt.Fprintln(out, renderTable([]string{"Delta", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&jobsPath, "jobs", "j", "", "Path to the scraped jobs JSON file (use - for stdin)")
	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "Path to the candidate profile JSON file")
	cmd.Flags().StringVar(&runID, "run-id", "", "Run identifier (defaults to a fresh UUID)")
	cmd.Flags().StringVar(&gitRevision, "git-revision", "", "Git revision recorded in the ledger")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the run result as JSON")
	_ = cmd.MarkFlagRequired("jobs")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}
