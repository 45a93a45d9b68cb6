package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"jobproof/internal/artifacts"
	"jobproof/internal/fileutil"
	"jobproof/internal/jobs"
	"jobproof/internal/ledger"
	"jobproof/internal/logging"
	"jobproof/internal/redaction"
	"jobproof/internal/scoring"
	"jobproof/internal/textutil"
)

// healthReport is the machine-readable run summary. Deliberately free of
// timestamps and run ids so replayed runs reproduce it byte for byte.
type healthReport struct {
	Status       string `json:"status"`
	JobCount     int    `json:"job_count"`
	BoostEntries int    `json:"boost_entries"`
	NewJobs      int    `json:"new_jobs"`
	RemovedJobs  int    `json:"removed_jobs"`
	ChangedJobs  int    `json:"changed_jobs"`
	Unchanged    int    `json:"unchanged_jobs"`
}

func (r *Runner) emit(ctx context.Context, result *Result, profile Profile, opts Options) error {
	if err := os.MkdirAll(result.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	health := healthReport{
		Status:       ledger.StatusSucceeded,
		JobCount:     len(result.Ranked),
		BoostEntries: len(result.Evidence.Entries),
		NewJobs:      result.Delta.NewJobCount,
		RemovedJobs:  result.Delta.RemovedJobCount,
		ChangedJobs:  result.Delta.ChangedJobCount,
		Unchanged:    result.Delta.UnchangedJobCount,
	}

	payloads := map[string]any{
		"ranked":            result.Ranked,
		"families":          result.Families,
		"delta":             result.Delta,
		"semantic_evidence": result.Evidence,
		"health":            health,
	}

	keys := make([]string, 0, len(declaredArtifacts))
	for key := range declaredArtifacts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		name := declaredArtifacts[key]
		if err := r.publish(ctx, result, profile, filepath.Join(result.OutputDir, name), payloads[key], opts); err != nil {
			return err
		}
		r.logger.Debug("artifact published", logging.FieldArtifact, key, logging.FieldRunID, result.RunID)
	}

	manifest, err := artifacts.Build(result.OutputDir, declaredArtifacts)
	if err != nil {
		return fmt.Errorf("build artifact manifest: %w", err)
	}
	result.Manifest = manifest
	if err := artifacts.WriteManifest(filepath.Join(result.OutputDir, ManifestName), manifest); err != nil {
		return err
	}

	proof, err := artifacts.BuildProofBundle(result.OutputDir)
	if err != nil {
		return fmt.Errorf("build proof bundle: %w", err)
	}
	result.Proof = proof
	if err := writeJSON(filepath.Join(result.OutputDir, ProofManifestName), proof); err != nil {
		return err
	}

	if opts.UpdateBaseline {
		if err := r.saveBaseline(currentRecords(result)); err != nil {
			return err
		}
	}

	if opts.RecordLedger && r.store != nil {
		rec := ledger.Record{
			RunID:       result.RunID,
			CandidateID: profile.CandidateID,
			GitRevision: opts.GitRevision,
			Status:      ledger.StatusSucceeded,
			SummaryPath: filepath.Join(result.OutputDir, "ranked.json"),
			HealthPath:  filepath.Join(result.OutputDir, "health.json"),
		}
		if err := r.store.Append(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// publish writes one artifact behind the redaction gate. A finding with no
// override in force blocks the write, records a blocked ledger entry, and
// fails the run.
func (r *Runner) publish(ctx context.Context, result *Result, profile Profile, path string, payload any, opts Options) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	if err := redaction.AssertNoSecrets(filepath.Base(path), string(data), r.cfg.Redaction.AllowOverride); err != nil {
		if opts.RecordLedger && r.store != nil {
			_ = r.store.Append(ctx, ledger.Record{
				RunID:       result.RunID,
				CandidateID: profile.CandidateID,
				GitRevision: opts.GitRevision,
				Status:      ledger.StatusBlocked,
			})
		}
		return err
	}
	return fileutil.WriteFileAtomic(path, data, 0o644)
}

func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	return fileutil.WriteFileAtomic(path, data, 0o644)
}

func (r *Runner) loadBaseline() ([]jobs.Record, error) {
	path := r.cfg.Paths.BaselinePath
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read baseline: %w", err)
	}
	var records []jobs.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse baseline: %w", err)
	}
	return records, nil
}

func (r *Runner) saveBaseline(records []jobs.Record) error {
	path := r.cfg.Paths.BaselinePath
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create baseline dir: %w", err)
	}
	return writeJSON(path, records)
}

func currentRecords(result *Result) []jobs.Record {
	records := make([]jobs.Record, 0, len(result.Ranked))
	for _, job := range result.Ranked {
		records = append(records, job.Record)
	}
	return records
}

// familyCounts tallies ranked jobs by role family. Family names come from
// the AI payload and are sanitized into stable tokens; jobs without one
// count under "unknown".
func familyCounts(ranked []scoring.ScoredJob) map[string]int {
	counts := make(map[string]int)
	for _, job := range ranked {
		family := ""
		if job.AI != nil {
			family = job.AI.RoleFamily
		}
		counts[textutil.SanitizeToken(family)]++
	}
	return counts
}
