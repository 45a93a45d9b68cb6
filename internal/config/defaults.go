package config

const (
	defaultStateDir      = "~/.local/share/jobproof/state"
	defaultOutputDir     = "~/.local/share/jobproof/runs"
	defaultLogDir        = "~/.local/share/jobproof/logs"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultBlendWeight   = 0.35
	defaultTopReasons    = 3
	defaultTopK          = 5
	defaultMaxJobs       = 50
	defaultMaxBoost      = 3.0
	defaultMinSimilarity = 0.15
	defaultModelID       = "hashing-v1"
	defaultDimensions    = 256
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir:  defaultStateDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Scoring: Scoring{
			BlendWeight: defaultBlendWeight,
			TopReasons:  defaultTopReasons,
		},
		Semantic: Semantic{
			Enabled:       true,
			TopK:          defaultTopK,
			MaxJobs:       defaultMaxJobs,
			MaxBoost:      defaultMaxBoost,
			MinSimilarity: defaultMinSimilarity,
			ModelID:       defaultModelID,
			Dimensions:    defaultDimensions,
		},
		Redaction: Redaction{
			AllowOverride: false,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
