package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobproof/internal/artifacts"
	"jobproof/internal/config"
	"jobproof/internal/logging"
	"jobproof/internal/pipeline"
)

func newReplayCommand(ctx *commandContext) *cobra.Command {
	var jobsPath string
	var profilePath string
	var manifestPath string
	var baselinePath string
	var runID string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-run the pipeline against recorded inputs and prove the outputs match",
		Long: `Replay re-executes the scoring pipeline with a prior run's inputs and
verifies the freshly produced artifacts against that run's recorded
manifest. Matching hashes prove the pipeline is reproducible for the
input set; any divergence is reported per artifact.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if baselinePath != "" {
				// The baseline the original run diffed against is one of its
				// declared inputs; the live baseline may have moved since.
				replayCfg := *cfg
				expanded, err := config.ExpandPath(baselinePath)
				if err != nil {
					return err
				}
				replayCfg.Paths.BaselinePath = expanded
				cfg = &replayCfg
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

			runner, err := pipeline.NewRunner(cfg, logger, nil)
			if err != nil {
				return err
			}

			// The replay run must not disturb state: no baseline update,
			// no ledger entry.
			result, err := runner.Run(cmd.Context(), records, profile, pipeline.Options{
				RunID: runID,
			})
			if err != nil {
				return err
			}

			prior, malformed, err := artifacts.LoadManifest(manifestPath)
			if err != nil {
				return err
			}
			ok, mismatches := artifacts.Verify(result.OutputDir, prior)
			mismatches = append(malformed, mismatches...)
			ok = ok && len(malformed) == 0

			if jsonOut {
				if err := writeJSON(cmd, map[string]any{
					"ok":         ok,
					"run_id":     result.RunID,
					"output_dir": result.OutputDir,
					"mismatches": mismatches,
				}); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				for _, m := range mismatches {
					fmt.Fprintf(out, "FAIL  %-24s %s\n", m.Key, m.Reason)
				}
				if ok {
					fmt.Fprintf(out, "replay ok: outputs under %s match %s\n", result.OutputDir, manifestPath)
				}
			}

			if !ok {
				return fmt.Errorf("replay failed: %d mismatch(es)", len(mismatches))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&jobsPath, "jobs", "j", "", "Path to the recorded input jobs JSON file")
	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "Path to the candidate profile JSON file")
	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Prior run's verifiable-artifacts manifest")
	cmd.Flags().StringVar(&baselinePath, "baseline", "", "Baseline file the original run diffed against (defaults to the configured baseline)")
	cmd.Flags().StringVar(&runID, "run-id", "", "Run identifier for the replay outputs")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the replay result as JSON")
	_ = cmd.MarkFlagRequired("jobs")
	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}
