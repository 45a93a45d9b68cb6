package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"jobproof/internal/delta"
)

func newDiffCommand(ctx *commandContext) *cobra.Command {
	var currentPath string
	var baselinePath string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "diff",
		Short:       "Compare a job set against a baseline",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := loadJobs(currentPath)
			if err != nil {
				return err
			}
			baseline, err := loadJobs(baselinePath)
			if err != nil {
				return err
			}

			report := delta.Diff(current, baseline)

			if jsonOut {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"new", strconv.Itoa(report.NewJobCount)},
				{"removed", strconv.Itoa(report.RemovedJobCount)},
				{"changed", strconv.Itoa(report.ChangedJobCount)},
				{"unchanged", strconv.Itoa(report.UnchangedJobCount)},
			}
			fmt.Fprintln(out, renderTable([]string{"Category", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))

			if len(report.FieldChanges) > 0 {
				fields := make([]string, 0, len(report.FieldChanges))
				for f := range report.FieldChanges {
					fields = append(fields, f)
				}
				sort.Strings(fields)
				fieldRows := make([][]string, 0, len(fields))
				for _, f := range fields {
					fieldRows = append(fieldRows, []string{f, strconv.Itoa(report.FieldChanges[f])})
				}
				fmt.Fprintln(out, renderTable([]string{"Changed Field", "Jobs"}, fieldRows, []columnAlignment{alignLeft, alignRight}))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&currentPath, "current", "", "Path to the current jobs JSON file")
	cmd.Flags().StringVar(&baselinePath, "baseline", "", "Path to the baseline jobs JSON file")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the delta report as JSON")
	_ = cmd.MarkFlagRequired("current")
	_ = cmd.MarkFlagRequired("baseline")

	return cmd
}
