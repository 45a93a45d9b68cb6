package semantic

// Policy configures one boost invocation. Immutable once passed in.
type Policy struct {
	Enabled       bool    `json:"enabled"`
	TopK          int     `json:"top_k"`
	MaxJobs       int     `json:"max_jobs"`
	MaxBoost      float64 `json:"max_boost"`
	MinSimilarity float64 `json:"min_similarity"`
}

// DefaultPolicy returns the repository default boost policy.
func DefaultPolicy() Policy {
	return Policy{
		Enabled:       true,
		TopK:          5,
		MaxJobs:       50,
		MaxBoost:      3.0,
		MinSimilarity: 0.15,
	}
}
