package semantic_test

import (
	"math"
	"reflect"
	"testing"

	"jobproof/internal/jobs"
	"jobproof/internal/scoring"
	"jobproof/internal/semantic"
)

func newCache(t *testing.T) *semantic.Cache {
	t.Helper()
	cache, err := semantic.OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	return cache
}

func TestHashEmbedderDeterministic(t *testing.T) {
	e := semantic.NewHashEmbedder("", 0)
	a := e.Embed("Senior Go engineer building distributed systems")
	b := e.Embed("Senior Go engineer building distributed systems")
	if !reflect.DeepEqual(a, b) {
		t.Fatal("equal text must embed to equal vectors")
	}
	if len(a) != semantic.DefaultDimensions {
		t.Fatalf("vector length = %d, want %d", len(a), semantic.DefaultDimensions)
	}

	var norm float64
	for _, v := range a {
		norm += v * v
	}
	if math.Abs(norm-1) > 1e-9 {
		t.Fatalf("vector not unit length: norm^2 = %g", norm)
	}
}

func TestHashEmbedderEmptyText(t *testing.T) {
	e := semantic.NewHashEmbedder("hashing-v1", 16)
	vec := e.Embed("  !?  ")
	for i, v := range vec {
		if v != 0 {
			t.Fatalf("tokenless text should embed to the zero vector, vec[%d]=%g", i, v)
		}
	}
	if got := semantic.Cosine(vec, e.Embed("real text")); got != 0 {
		t.Fatalf("cosine against zero vector = %g, want 0", got)
	}
}

func TestCosineSelfSimilarity(t *testing.T) {
	e := semantic.NewHashEmbedder("", 0)
	vec := e.Embed("kubernetes terraform golang")
	if got := semantic.Cosine(vec, vec); math.Abs(got-1) > 1e-9 {
		t.Fatalf("self similarity = %g, want 1", got)
	}
	if got := semantic.Cosine(vec, []float64{1, 2}); got != 0 {
		t.Fatalf("mismatched dimensions should yield 0, got %g", got)
	}
}

func TestCacheFirstWriteWins(t *testing.T) {
	cache := newCache(t)
	key := semantic.Key("some profile text", "hashing-v1")

	if _, ok := cache.Get(key); ok {
		t.Fatal("unexpected hit on empty cache")
	}
	if err := cache.Put(key, []float64{1, 2, 3}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := cache.Put(key, []float64{9, 9, 9}); err != nil {
		t.Fatalf("second put: %v", err)
	}
	vec, ok := cache.Get(key)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if !reflect.DeepEqual(vec, []float64{1, 2, 3}) {
		t.Fatalf("first write must win, got %v", vec)
	}
}

func TestCacheKeyNormalization(t *testing.T) {
	a := semantic.Key("  Go  Engineer ", "hashing-v1")
	b := semantic.Key("go engineer", "hashing-v1")
	if a != b {
		t.Fatalf("normalized-equal text should share a key: %q vs %q", a, b)
	}
	if a == semantic.Key("go engineer", "hashing-v2") {
		t.Fatal("model id must participate in the key")
	}
}

func rankedFixture() []scoring.ScoredJob {
	mk := func(key, desc string, score int) scoring.ScoredJob {
		return scoring.ScoredJob{
			Record:      jobs.Record{"apply_url": "https://x/" + key, "description": desc},
			IdentityKey: key,
			FinalScore:  score,
		}
	}
	return []scoring.ScoredJob{
		mk("top", "senior golang engineer distributed systems", 80),
		mk("mid", "golang platform engineer kubernetes", 60),
		mk("low", "golang infrastructure engineer kubernetes terraform", 40),
	}
}

func TestBoostDisabled(t *testing.T) {
	policy := semantic.DefaultPolicy()
	policy.Enabled = false

	out, ev, err := semantic.Boost(rankedFixture(), "profile", policy, newCache(t), semantic.NewHashEmbedder("", 0))
	if err != nil {
		t.Fatalf("boost: %v", err)
	}
	if ev.Enabled || ev.SkippedReason != semantic.ReasonDisabled {
		t.Fatalf("unexpected evidence: %+v", ev)
	}
	for i, job := range out {
		if job.FinalScore != rankedFixture()[i].FinalScore || job.SemanticBoost != 0 {
			t.Fatalf("disabled boost changed job %s: %+v", job.IdentityKey, job)
		}
	}
}

func TestBoostBudgetSpentBottomUp(t *testing.T) {
	policy := semantic.DefaultPolicy()
	policy.TopK = 1
	policy.MinSimilarity = 0

	embedder := semantic.NewHashEmbedder("", 0)
	out, ev, err := semantic.Boost(rankedFixture(), "golang kubernetes terraform infrastructure", policy, newCache(t), embedder)
	if err != nil {
		t.Fatalf("boost: %v", err)
	}
	if len(ev.Entries) != 1 {
		t.Fatalf("top_k=1 must compute exactly one entry, got %d", len(ev.Entries))
	}
	if ev.Entries[0].JobID != "low" {
		t.Fatalf("budget should start at the lowest-ranked eligible job, got %q", ev.Entries[0].JobID)
	}
	if out[0].SemanticBoost != 0 || out[1].SemanticBoost != 0 {
		t.Fatal("jobs outside the budget must not be boosted")
	}
}

func TestBoostBelowThreshold(t *testing.T) {
	policy := semantic.DefaultPolicy()
	policy.MinSimilarity = 1.1 // unreachable

	out, ev, err := semantic.Boost(rankedFixture(), "profile text about golang", policy, newCache(t), semantic.NewHashEmbedder("", 0))
	if err != nil {
		t.Fatalf("boost: %v", err)
	}
	for _, entry := range ev.Entries {
		if entry.Reason != semantic.ReasonBelowThreshold {
			t.Fatalf("entry %s reason = %q", entry.JobID, entry.Reason)
		}
		if entry.Boost != 0 {
			t.Fatalf("entry %s carries a boost below threshold", entry.JobID)
		}
	}
	for i, job := range out {
		if job.FinalScore != rankedFixture()[i].FinalScore {
			t.Fatalf("score changed below threshold for %s", job.IdentityKey)
		}
	}
}

func TestBoostDeterministicWithCacheReuse(t *testing.T) {
	policy := semantic.DefaultPolicy()
	policy.MinSimilarity = 0
	cache := newCache(t)
	embedder := semantic.NewHashEmbedder("", 0)
	profile := "golang kubernetes engineer"

	first, evFirst, err := semantic.Boost(rankedFixture(), profile, policy, cache, embedder)
	if err != nil {
		t.Fatalf("first boost: %v", err)
	}
	second, evSecond, err := semantic.Boost(rankedFixture(), profile, policy, cache, embedder)
	if err != nil {
		t.Fatalf("second boost: %v", err)
	}

	if !reflect.DeepEqual(scores(first), scores(second)) {
		t.Fatalf("boost not deterministic: %v vs %v", scores(first), scores(second))
	}
	if evFirst.ProfileCacheHit {
		t.Fatal("first run should miss the profile cache")
	}
	if !evSecond.ProfileCacheHit {
		t.Fatal("second run should hit the profile cache")
	}
	for _, entry := range evSecond.Entries {
		if !entry.CacheHit {
			t.Fatalf("second run entry %s should be a cache hit", entry.JobID)
		}
	}
	for i := range evFirst.Entries {
		if evFirst.Entries[i].Similarity != evSecond.Entries[i].Similarity {
			t.Fatal("similarities must be identical across runs")
		}
	}
}

func scores(ranked []scoring.ScoredJob) []int {
	out := make([]int, len(ranked))
	for i, j := range ranked {
		out[i] = j.FinalScore
	}
	return out
}
