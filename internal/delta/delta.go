package delta

import (
	"sort"

	"jobproof/internal/identity"
	"jobproof/internal/jobs"
)

// maxExamples caps how many example records a report carries per category.
const maxExamples = 10

// Report summarizes the differences between a current job set and a
// baseline. Counts are keyed by identity; FieldChanges tallies which fields
// differed among changed jobs. Example lists carry a bounded sample of new
// and changed records for notification rendering.
type Report struct {
	NewJobCount       int            `json:"new_job_count"`
	RemovedJobCount   int            `json:"removed_job_count"`
	ChangedJobCount   int            `json:"changed_job_count"`
	UnchangedJobCount int            `json:"unchanged_job_count"`
	FieldChanges      map[string]int `json:"field_changes"`
	NewJobs           []jobs.Record  `json:"new_jobs,omitempty"`
	ChangedJobs       []jobs.Record  `json:"changed_jobs,omitempty"`
}

// Diff compares current against baseline by identity key. Within a matched
// pair, every non-volatile field present on either side is compared through
// stable string coercion; any difference marks the job changed and
// increments that field's tally.
func Diff(current, baseline []jobs.Record) Report {
	report := Report{FieldChanges: map[string]int{}}

	currentByID := keyByIdentity(current)
	baselineByID := keyByIdentity(baseline)

	for _, id := range sortedKeys(currentByID) {
		job := currentByID[id]
		base, ok := baselineByID[id]
		if !ok {
			report.NewJobCount++
			if len(report.NewJobs) < maxExamples {
				report.NewJobs = append(report.NewJobs, job)
			}
			continue
		}
		changed := compareFields(job, base, report.FieldChanges)
		if changed {
			report.ChangedJobCount++
			if len(report.ChangedJobs) < maxExamples {
				report.ChangedJobs = append(report.ChangedJobs, job)
			}
		} else {
			report.UnchangedJobCount++
		}
	}

	for id := range baselineByID {
		if _, ok := currentByID[id]; !ok {
			report.RemovedJobCount++
		}
	}

	return report
}

func keyByIdentity(records []jobs.Record) map[string]jobs.Record {
	out := make(map[string]jobs.Record, len(records))
	for _, job := range records {
		out[identity.Resolve(job)] = job
	}
	return out
}

func sortedKeys(m map[string]jobs.Record) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// compareFields reports whether any non-volatile field differs, tallying
// each differing field name.
func compareFields(current, base jobs.Record, tally map[string]int) bool {
	fields := map[string]struct{}{}
	for k := range current {
		fields[k] = struct{}{}
	}
	for k := range base {
		fields[k] = struct{}{}
	}

	changed := false
	for field := range fields {
		if identity.IsVolatile(field) {
			continue
		}
		if jobs.CoerceString(current[field]) != jobs.CoerceString(base[field]) {
			tally[field]++
			changed = true
		}
	}
	return changed
}
