package semantic

import (
	"fmt"
	"math"

	"jobproof/internal/scoring"
)

// Evidence records what a boost invocation did, entry by entry, so boost
// decisions can be audited and replayed byte-for-byte. Cache-hit flags are
// excluded from serialization: they vary between cold and warm runs and
// would break replay of the evidence artifact.
type Evidence struct {
	Enabled         bool    `json:"enabled"`
	SkippedReason   string  `json:"skipped_reason,omitempty"`
	ModelID         string  `json:"model_id,omitempty"`
	ProfileCacheHit bool    `json:"-"`
	Entries         []Entry `json:"entries"`
}

// Entry is the per-job boost record.
type Entry struct {
	JobID      string  `json:"job_id"`
	Similarity float64 `json:"similarity"`
	Boost      float64 `json:"boost"`
	FinalScore int     `json:"final_score"`
	Reason     string  `json:"reason"`
	CacheHit   bool    `json:"-"`
}

// Evidence reason tags.
const (
	ReasonBoostApplied   = "boost_applied"
	ReasonBelowThreshold = "below_threshold"
	ReasonDisabled       = "semantic_disabled"
)

// evidencePrecision bounds similarity and boost values recorded in evidence
// so artifacts reproduce bit-for-bit across platforms.
const evidencePrecision = 1e6

// Boost applies the semantic adjustment to ranked jobs.
//
// Jobs must arrive in ranked order. The eligible pool is the first
// min(len(jobs), policy.MaxJobs) jobs; embeddings are computed bottom-up
// from the lowest-ranked eligible job, at most policy.TopK of them. A job
// whose profile similarity clears policy.MinSimilarity gains
// clamp(similarity*MaxBoost, 0, MaxBoost) on its final score. The input
// slice is not modified; the boosted copy and evidence are returned.
func Boost(ranked []scoring.ScoredJob, profileText string, policy Policy, cache *Cache, embedder Embedder) ([]scoring.ScoredJob, Evidence, error) {
	out := make([]scoring.ScoredJob, len(ranked))
	copy(out, ranked)

	if !policy.Enabled {
		return out, Evidence{
			Enabled:       false,
			SkippedReason: ReasonDisabled,
			Entries:       []Entry{},
		}, nil
	}

	ev := Evidence{
		Enabled: true,
		ModelID: embedder.ModelID(),
		Entries: []Entry{},
	}

	profileVec, profileHit, err := embedCached(cache, embedder, profileText)
	if err != nil {
		return nil, Evidence{}, fmt.Errorf("embed profile: %w", err)
	}
	ev.ProfileCacheHit = profileHit

	pool := len(out)
	if policy.MaxJobs > 0 && policy.MaxJobs < pool {
		pool = policy.MaxJobs
	}
	budget := policy.TopK
	if budget <= 0 || budget > pool {
		budget = pool
	}

	// Lowest-ranked eligible jobs are considered first, so a small TopK
	// spends its budget on the jobs with the most rank to gain.
	for i := pool - 1; i >= 0 && budget > 0; i-- {
		budget--
		job := &out[i]

		jobVec, jobHit, err := embedCached(cache, embedder, job.Record.Description())
		if err != nil {
			return nil, Evidence{}, fmt.Errorf("embed job %s: %w", job.IdentityKey, err)
		}

		sim := Cosine(profileVec, jobVec)
		entry := Entry{
			JobID:      job.IdentityKey,
			Similarity: roundEvidence(sim),
			CacheHit:   jobHit,
		}

		if sim >= policy.MinSimilarity {
			boost := sim * policy.MaxBoost
			if boost < 0 {
				boost = 0
			}
			if boost > policy.MaxBoost {
				boost = policy.MaxBoost
			}
			job.SemanticBoost = roundEvidence(boost)
			job.FinalScore = int(math.RoundToEven(float64(job.FinalScore) + boost))
			entry.Boost = job.SemanticBoost
			entry.Reason = ReasonBoostApplied
		} else {
			entry.Reason = ReasonBelowThreshold
		}
		entry.FinalScore = job.FinalScore
		ev.Entries = append(ev.Entries, entry)
	}

	return out, ev, nil
}

func embedCached(cache *Cache, embedder Embedder, text string) ([]float64, bool, error) {
	key := Key(text, embedder.ModelID())
	if vec, ok := cache.Get(key); ok {
		return vec, true, nil
	}
	vec := embedder.Embed(text)
	if err := cache.Put(key, vec); err != nil {
		return nil, false, err
	}
	return vec, false, nil
}

func roundEvidence(v float64) float64 {
	return math.Round(v*evidencePrecision) / evidencePrecision
}
