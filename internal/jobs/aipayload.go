package jobs

import (
	"strconv"
	"strings"
)

// AIPayload is the normalized shape of an AI enrichment result. Every field
// has a defined zero-value default; NormalizeAIPayload guarantees the
// invariants documented on each field regardless of input shape.
type AIPayload struct {
	Summary         string   `json:"summary"`
	Confidence      float64  `json:"confidence"`
	Notes           string   `json:"notes"`
	SkillsRequired  []string `json:"skills_required"`
	SkillsPreferred []string `json:"skills_preferred"`
	SummaryBullets  []string `json:"summary_bullets"`
	RedFlags        []string `json:"red_flags"`
	RoleFamily      string   `json:"role_family"`
	Seniority       string   `json:"seniority"`
	// MatchScore is always within [0,100] after normalization.
	MatchScore   int    `json:"match_score"`
	RulesVersion string `json:"rules_version"`
}

// NormalizeAIPayload converts an arbitrarily-shaped payload value into a
// fixed-shape AIPayload. Missing fields default, scalar values for list
// fields become single-element lists, and match_score is clamped to [0,100].
// A nil or non-mapping input yields (nil, false).
func NormalizeAIPayload(raw any) (*AIPayload, bool) {
	m, ok := raw.(map[string]any)
	if !ok || m == nil {
		return nil, false
	}
	p := &AIPayload{
		Summary:         CoerceString(m["summary"]),
		Confidence:      coerceFloat(m["confidence"]),
		Notes:           CoerceString(m["notes"]),
		SkillsRequired:  normalizeList(m["skills_required"]),
		SkillsPreferred: normalizeList(m["skills_preferred"]),
		SummaryBullets:  normalizeList(m["summary_bullets"]),
		RedFlags:        normalizeList(m["red_flags"]),
		RoleFamily:      CoerceString(m["role_family"]),
		Seniority:       CoerceString(m["seniority"]),
		MatchScore:      clampScore(coerceInt(m["match_score"])),
		RulesVersion:    CoerceString(m["rules_version"]),
	}
	return p, true
}

func normalizeList(v any) []string {
	if v == nil {
		return []string{}
	}
	return coerceStringSlice(v)
}

func coerceFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f
		}
	}
	return 0
}

func coerceInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return int(f)
		}
	}
	return 0
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
