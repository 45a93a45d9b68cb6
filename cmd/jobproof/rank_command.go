package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"jobproof/internal/identity"
	"jobproof/internal/jobs"
	"jobproof/internal/scoring"
)

var titleCaser = cases.Title(language.English)

func newRankCommand(ctx *commandContext) *cobra.Command {
	var jobsPath string
	var profilePath string
	var jsonOut bool
	var limit int

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Score and rank a job set without writing artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			records, err := loadJobs(jobsPath)
			if err != nil {
				return err
			}

			var skills []string
			if profilePath != "" {
				profile, err := loadProfileSkills(profilePath)
				if err != nil {
					return err
				}
				skills = profile
			}

			blendCfg := scoring.BlendConfig{
				Weight:     cfg.Scoring.BlendWeight,
				TopReasons: cfg.Scoring.TopReasons,
			}
			scored := make([]scoring.ScoredJob, 0, len(records))
			for _, rec := range records {
				ai, _ := jobs.NormalizeAIPayload(rec[jobs.FieldAIPayload])
				heuristic := rec.Int(jobs.FieldHeuristicScore)
				final, expl := scoring.Blend(heuristic, rec.StringSlice(jobs.FieldHeuristicReasons), ai, skills, blendCfg)
				scored = append(scored, scoring.ScoredJob{
					Record:         rec,
					IdentityKey:    identity.Resolve(rec),
					ContentHash:    identity.Fingerprint(rec),
					HeuristicScore: heuristic,
					AI:             ai,
					FinalScore:     final,
					Explanation:    expl,
				})
			}
			scoring.Rank(scored)

			if limit > 0 && limit < len(scored) {
				scored = scored[:limit]
			}

			if jsonOut {
				return writeJSON(cmd, scored)
			}

			rows := make([][]string, 0, len(scored))
			for _, job := range scored {
				family := ""
				if job.AI != nil && job.AI.RoleFamily != "" {
					family = titleCaser.String(job.AI.RoleFamily)
				}
				rows = append(rows, []string{
					strconv.Itoa(job.FinalScore),
					job.Record.String(jobs.FieldTitle),
					family,
					job.ApplyURL(),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Score", "Title", "Family", "Apply URL"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&jobsPath, "jobs", "j", "", "Path to the scraped jobs JSON file (use - for stdin)")
	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "Path to the candidate profile JSON file")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit ranked jobs as JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many jobs (0 = all)")
	_ = cmd.MarkFlagRequired("jobs")

	return cmd
}
