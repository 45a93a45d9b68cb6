package delta_test

import (
	"testing"

	"jobproof/internal/delta"
	"jobproof/internal/jobs"
)

func job(url, title string, extra jobs.Record) jobs.Record {
	r := jobs.Record{"apply_url": url, "title": title}
	for k, v := range extra {
		r[k] = v
	}
	return r
}

func TestDiffCategories(t *testing.T) {
	baseline := []jobs.Record{
		job("https://x/a", "Job A", nil),
		job("https://x/b", "Job B", nil),
		job("https://x/c", "Job C", nil),
	}
	current := []jobs.Record{
		job("https://x/a", "Job A", nil),
		job("https://x/c", "Job C updated", nil),
		job("https://x/d", "Job D", nil),
	}

	report := delta.Diff(current, baseline)

	if report.NewJobCount != 1 {
		t.Errorf("new = %d, want 1", report.NewJobCount)
	}
	if report.RemovedJobCount != 1 {
		t.Errorf("removed = %d, want 1", report.RemovedJobCount)
	}
	if report.ChangedJobCount != 1 {
		t.Errorf("changed = %d, want 1", report.ChangedJobCount)
	}
	if report.UnchangedJobCount != 1 {
		t.Errorf("unchanged = %d, want 1", report.UnchangedJobCount)
	}
	if report.FieldChanges["title"] != 1 {
		t.Errorf("field_changes[title] = %d, want 1", report.FieldChanges["title"])
	}
	if len(report.NewJobs) != 1 || report.NewJobs[0].String("apply_url") != "https://x/d" {
		t.Errorf("unexpected new job examples: %+v", report.NewJobs)
	}
	if len(report.ChangedJobs) != 1 || report.ChangedJobs[0].String("apply_url") != "https://x/c" {
		t.Errorf("unexpected changed job examples: %+v", report.ChangedJobs)
	}
}

func TestDiffIgnoresVolatileFields(t *testing.T) {
	baseline := []jobs.Record{job("https://x/a", "Job A", jobs.Record{
		"fetched_at":     "2026-01-01T00:00:00Z",
		"run_id":         "run-1",
		"seen_timestamp": "111",
	})}
	current := []jobs.Record{job("https://x/a", "Job A", jobs.Record{
		"fetched_at":     "2026-02-01T00:00:00Z",
		"run_id":         "run-2",
		"seen_timestamp": "222",
	})}

	report := delta.Diff(current, baseline)
	if report.ChangedJobCount != 0 || report.UnchangedJobCount != 1 {
		t.Fatalf("volatile-only differences must not mark a job changed: %+v", report)
	}
	if len(report.FieldChanges) != 0 {
		t.Fatalf("volatile fields tallied: %v", report.FieldChanges)
	}
}

func TestDiffNumericCoercion(t *testing.T) {
	// A JSON-decoded baseline carries float64 values; a freshly built current
	// set may carry ints. Equal numbers must not read as changes.
	baseline := []jobs.Record{job("https://x/a", "Job A", jobs.Record{"heuristic_score": float64(70)})}
	current := []jobs.Record{job("https://x/a", "Job A", jobs.Record{"heuristic_score": 70})}

	report := delta.Diff(current, baseline)
	if report.ChangedJobCount != 0 {
		t.Fatalf("numeric representation change tallied as a diff: %+v", report.FieldChanges)
	}
}

func TestDiffFieldAddition(t *testing.T) {
	baseline := []jobs.Record{job("https://x/a", "Job A", nil)}
	current := []jobs.Record{job("https://x/a", "Job A", jobs.Record{"team": "Infra"})}

	report := delta.Diff(current, baseline)
	if report.ChangedJobCount != 1 {
		t.Fatal("a newly present field must mark the job changed")
	}
	if report.FieldChanges["team"] != 1 {
		t.Fatalf("field_changes = %v", report.FieldChanges)
	}
}

func TestDiffEmptyBaseline(t *testing.T) {
	current := []jobs.Record{job("https://x/a", "Job A", nil), job("https://x/b", "Job B", nil)}
	report := delta.Diff(current, nil)
	if report.NewJobCount != 2 || report.RemovedJobCount != 0 || report.ChangedJobCount != 0 {
		t.Fatalf("unexpected report against empty baseline: %+v", report)
	}
}
