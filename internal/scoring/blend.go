package scoring

import (
	"math"
	"sort"
	"strings"

	"jobproof/internal/jobs"
)

// DefaultBlendWeight is the fraction of the final score attributed to the
// AI match score when a payload is present.
const DefaultBlendWeight = 0.35

// defaultTopReasons caps how many heuristic reasons the explanation carries.
const defaultTopReasons = 3

// BlendConfig controls how heuristic and AI match scores combine.
type BlendConfig struct {
	Weight     float64 `json:"weight"`
	TopReasons int     `json:"top_reasons"`
}

// DefaultBlendConfig returns the repository default blend settings.
func DefaultBlendConfig() BlendConfig {
	return BlendConfig{Weight: DefaultBlendWeight, TopReasons: defaultTopReasons}
}

// Explanation records every input that shaped a final score so rankings can
// be audited without re-running the pipeline.
type Explanation struct {
	HeuristicScore        int         `json:"heuristic_score"`
	TopReasons            []string    `json:"top_reasons"`
	MatchScore            int         `json:"match_score"`
	MatchRationale        string      `json:"match_rationale"`
	MissingRequiredSkills []string    `json:"missing_required_skills"`
	FinalScore            int         `json:"final_score"`
	BlendWeightUsed       float64     `json:"blend_weight_used"`
	AIInfluenced          bool        `json:"ai_influenced"`
	Blend                 BlendConfig `json:"blend"`
}

// Blend combines a heuristic score with an optional AI payload.
//
// Without a payload the heuristic score passes through unchanged. With one,
// final = round((1-w)*heuristic + w*match) using round-half-to-even.
// candidateSkills feeds the missing-required-skills portion of the
// explanation; matching is case-insensitive.
func Blend(heuristic int, reasons []string, ai *jobs.AIPayload, candidateSkills []string, cfg BlendConfig) (int, Explanation) {
	if cfg.Weight <= 0 {
		cfg.Weight = DefaultBlendWeight
	}
	if cfg.TopReasons <= 0 {
		cfg.TopReasons = defaultTopReasons
	}

	expl := Explanation{
		HeuristicScore:        heuristic,
		TopReasons:            topReasons(reasons, cfg.TopReasons),
		MissingRequiredSkills: []string{},
		BlendWeightUsed:       cfg.Weight,
		Blend:                 cfg,
	}

	if ai == nil {
		expl.FinalScore = heuristic
		return heuristic, expl
	}

	final := roundHalfEven((1-cfg.Weight)*float64(heuristic) + cfg.Weight*float64(ai.MatchScore))
	expl.MatchScore = ai.MatchScore
	expl.MatchRationale = matchRationale(ai)
	expl.MissingRequiredSkills = missingSkills(ai.SkillsRequired, candidateSkills)
	expl.FinalScore = final
	expl.AIInfluenced = true
	return final, expl
}

// roundHalfEven rounds to the nearest integer with ties going to the even
// neighbor. The value is snapped to nine decimal places first so binary
// float error around an exact .5 cannot flip the tie direction.
func roundHalfEven(v float64) int {
	snapped := math.RoundToEven(v*1e9) / 1e9
	return int(math.RoundToEven(snapped))
}

func topReasons(reasons []string, limit int) []string {
	out := make([]string, 0, limit)
	for _, r := range reasons {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out
}

func matchRationale(ai *jobs.AIPayload) string {
	if s := strings.TrimSpace(ai.Summary); s != "" {
		return s
	}
	return strings.TrimSpace(ai.Notes)
}

func missingSkills(required, candidate []string) []string {
	have := make(map[string]struct{}, len(candidate))
	for _, s := range candidate {
		have[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	missing := make([]string, 0, len(required))
	seen := make(map[string]struct{}, len(required))
	for _, s := range required {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" {
			continue
		}
		if _, ok := have[key]; ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		missing = append(missing, s)
	}
	sort.Strings(missing)
	return missing
}
