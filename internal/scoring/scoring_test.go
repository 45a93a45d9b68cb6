package scoring_test

import (
	"reflect"
	"testing"

	"jobproof/internal/jobs"
	"jobproof/internal/scoring"
)

func TestBlendWithoutPayload(t *testing.T) {
	final, expl := scoring.Blend(72, []string{"keyword: go", "remote"}, nil, nil, scoring.DefaultBlendConfig())
	if final != 72 {
		t.Fatalf("final = %d, want heuristic pass-through 72", final)
	}
	if expl.AIInfluenced {
		t.Fatal("explanation must not claim AI influence without a payload")
	}
	if expl.MissingRequiredSkills == nil {
		t.Fatal("missing_required_skills must be an empty list, not nil")
	}
	if !reflect.DeepEqual(expl.TopReasons, []string{"keyword: go", "remote"}) {
		t.Fatalf("unexpected top reasons: %#v", expl.TopReasons)
	}
}

func TestBlendArithmetic(t *testing.T) {
	tests := []struct {
		name      string
		heuristic int
		match     int
		weight    float64
		want      int
	}{
		{"zero heuristic", 0, 90, 0.35, 32},
		{"equal inputs", 60, 60, 0.35, 60},
		{"default weight", 80, 40, 0, 66},
		{"half even rounding", 50, 60, 0.35, 54},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ai := &jobs.AIPayload{MatchScore: tt.match}
			final, expl := scoring.Blend(tt.heuristic, nil, ai, nil, scoring.BlendConfig{Weight: tt.weight})
			if final != tt.want {
				t.Fatalf("final = %d, want %d", final, tt.want)
			}
			if !expl.AIInfluenced {
				t.Fatal("expected ai_influenced to be set")
			}
			if expl.FinalScore != final {
				t.Fatalf("explanation final %d disagrees with returned %d", expl.FinalScore, final)
			}
		})
	}
}

func TestBlendMissingSkills(t *testing.T) {
	ai := &jobs.AIPayload{
		MatchScore:     50,
		SkillsRequired: []string{"Kubernetes", "Go", "go", "Terraform", " "},
	}
	_, expl := scoring.Blend(50, nil, ai, []string{"go", "python"}, scoring.DefaultBlendConfig())
	want := []string{"Kubernetes", "Terraform"}
	if !reflect.DeepEqual(expl.MissingRequiredSkills, want) {
		t.Fatalf("missing skills = %#v, want %#v", expl.MissingRequiredSkills, want)
	}
}

func TestBlendTopReasonsCapped(t *testing.T) {
	reasons := []string{"a", "", "b", "c", "d"}
	_, expl := scoring.Blend(10, reasons, nil, nil, scoring.DefaultBlendConfig())
	if !reflect.DeepEqual(expl.TopReasons, []string{"a", "b", "c"}) {
		t.Fatalf("top reasons = %#v", expl.TopReasons)
	}
}

func TestRankOrdering(t *testing.T) {
	mk := func(score int, applyURL, key string) scoring.ScoredJob {
		return scoring.ScoredJob{
			Record:     jobs.Record{"apply_url": applyURL},
			IdentityKey: key,
			FinalScore: score,
		}
	}
	ranked := []scoring.ScoredJob{
		mk(50, "https://x/b", "b"),
		mk(80, "https://x/c", "c"),
		mk(50, "https://x/a", "a"),
		mk(50, "https://x/a", "a2"),
	}
	scoring.Rank(ranked)
	gotKeys := make([]string, len(ranked))
	for i, j := range ranked {
		gotKeys[i] = j.IdentityKey
	}
	want := []string{"c", "a", "a2", "b"}
	if !reflect.DeepEqual(gotKeys, want) {
		t.Fatalf("rank order = %v, want %v", gotKeys, want)
	}
}

func TestRankDeterministicAcrossShuffles(t *testing.T) {
	mk := func(score int, url string) scoring.ScoredJob {
		return scoring.ScoredJob{Record: jobs.Record{"apply_url": url}, IdentityKey: url, FinalScore: score}
	}
	a := []scoring.ScoredJob{mk(10, "u1"), mk(30, "u2"), mk(30, "u3"), mk(5, "u4")}
	b := []scoring.ScoredJob{mk(30, "u3"), mk(5, "u4"), mk(30, "u2"), mk(10, "u1")}

	scoring.Rank(a)
	scoring.Rank(b)
	for i := range a {
		if a[i].IdentityKey != b[i].IdentityKey {
			t.Fatalf("input order leaked into ranking at %d: %s vs %s", i, a[i].IdentityKey, b[i].IdentityKey)
		}
	}
}
