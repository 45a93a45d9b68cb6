package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"jobproof/internal/artifacts"
	"jobproof/internal/config"
	"jobproof/internal/delta"
	"jobproof/internal/identity"
	"jobproof/internal/jobs"
	"jobproof/internal/ledger"
	"jobproof/internal/logging"
	"jobproof/internal/scoring"
	"jobproof/internal/semantic"
)

// Artifact logical keys and file names emitted per run.
var declaredArtifacts = map[string]string{
	"ranked":            "ranked.json",
	"families":          "families.json",
	"delta":             "delta.json",
	"semantic_evidence": "evidence.json",
	"health":            "health.json",
}

// ManifestName is the verifiable-artifacts manifest file name.
const ManifestName = "manifest.json"

// ProofManifestName is the proof-bundle manifest file name.
const ProofManifestName = "proof_manifest.json"

// Options controls a single run.
type Options struct {
	// RunID identifies the run; a fresh UUID is generated when empty.
	RunID string
	// GitRevision is recorded in the ledger for audit.
	GitRevision string
	// UpdateBaseline persists the current job set as the next baseline.
	UpdateBaseline bool
	// RecordLedger appends the run outcome to the ledger.
	RecordLedger bool
}

// Result is everything a completed run produced.
type Result struct {
	RunID     string
	OutputDir string
	Ranked    []scoring.ScoredJob
	Families  map[string]int
	Delta     delta.Report
	Evidence  semantic.Evidence
	Manifest  map[string]artifacts.Record
	Proof     []artifacts.ProofEntry
}

// Runner drives the scoring pipeline.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *ledger.Store
	cache    *semantic.Cache
	embedder semantic.Embedder
}

// NewRunner wires a runner from config. The ledger store may be nil when
// ledger recording is disabled for every run (replay tooling does this).
func NewRunner(cfg *config.Config, logger *slog.Logger, store *ledger.Store) (*Runner, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	cache, err := semantic.OpenCache(cfg.Semantic.CacheDir)
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:      cfg,
		logger:   logger.With(logging.FieldComponent, "pipeline"),
		store:    store,
		cache:    cache,
		embedder: semantic.NewHashEmbedder(cfg.Semantic.ModelID, cfg.Semantic.Dimensions),
	}, nil
}

// Run executes the pipeline over the given job records for a candidate
// profile and emits the run's artifacts under the output directory.
func (r *Runner) Run(ctx context.Context, records []jobs.Record, profile Profile, opts Options) (*Result, error) {
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	log := r.logger.With(
		logging.FieldRunID, runID,
		logging.FieldCandidateID, profile.CandidateID,
	)
	log.Info("run started", "jobs", len(records))

	scored := r.score(records, profile)
	scoring.Rank(scored)

	boosted, evidence, err := semantic.Boost(scored, profile.ProfileText, r.policy(), r.cache, r.embedder)
	if err != nil {
		return nil, fmt.Errorf("semantic boost: %w", err)
	}
	// Boosting can reorder scores; recombine with the deterministic rule
	// before anything is written.
	scoring.Rank(boosted)

	baseline, err := r.loadBaseline()
	if err != nil {
		return nil, err
	}
	report := delta.Diff(records, baseline)

	outputDir := filepath.Join(r.cfg.Paths.OutputDir, runID)
	result := &Result{
		RunID:     runID,
		OutputDir: outputDir,
		Ranked:    boosted,
		Families:  familyCounts(boosted),
		Delta:     report,
		Evidence:  evidence,
	}

	if err := r.emit(ctx, result, profile, opts); err != nil {
		return nil, err
	}

	log.Info("run finished",
		"new", report.NewJobCount,
		"removed", report.RemovedJobCount,
		"changed", report.ChangedJobCount,
		"unchanged", report.UnchangedJobCount,
	)
	return result, nil
}

func (r *Runner) score(records []jobs.Record, profile Profile) []scoring.ScoredJob {
	blendCfg := scoring.BlendConfig{
		Weight:     r.cfg.Scoring.BlendWeight,
		TopReasons: r.cfg.Scoring.TopReasons,
	}
	scored := make([]scoring.ScoredJob, 0, len(records))
	for _, rec := range records {
		heuristic := rec.Int(jobs.FieldHeuristicScore)
		reasons := rec.StringSlice(jobs.FieldHeuristicReasons)
		ai, _ := jobs.NormalizeAIPayload(rec[jobs.FieldAIPayload])

		final, expl := scoring.Blend(heuristic, reasons, ai, profile.Skills, blendCfg)
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
	return scored
}

func (r *Runner) policy() semantic.Policy {
	return semantic.Policy{
		Enabled:       r.cfg.Semantic.Enabled,
		TopK:          r.cfg.Semantic.TopK,
		MaxJobs:       r.cfg.Semantic.MaxJobs,
		MaxBoost:      r.cfg.Semantic.MaxBoost,
		MinSimilarity: r.cfg.Semantic.MinSimilarity,
	}
}
