package scoring

import (
	"sort"

	"jobproof/internal/jobs"
)

// ScoredJob is a job record with its derived scoring fields attached.
type ScoredJob struct {
	Record         jobs.Record     `json:"record"`
	IdentityKey    string          `json:"identity_key"`
	ContentHash    string          `json:"content_hash"`
	HeuristicScore int             `json:"heuristic_score"`
	AI             *jobs.AIPayload `json:"ai_payload,omitempty"`
	FinalScore     int             `json:"final_score"`
	SemanticBoost  float64         `json:"semantic_boost"`
	Explanation    Explanation     `json:"explanation"`
}

// ApplyURL returns the job's apply URL, used as the ranking tie-breaker.
func (s ScoredJob) ApplyURL() string {
	return s.Record.String(jobs.FieldApplyURL)
}

// Rank sorts jobs in place: final score descending, ties broken by
// ascending apply URL, then identity key. Insertion order never decides the
// result, so concurrent scoring workers cannot perturb the output.
func Rank(scored []ScoredJob) {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].FinalScore != scored[j].FinalScore {
			return scored[i].FinalScore > scored[j].FinalScore
		}
		ui, uj := scored[i].ApplyURL(), scored[j].ApplyURL()
		if ui != uj {
			return ui < uj
		}
		return scored[i].IdentityKey < scored[j].IdentityKey
	})
}
