package testsupport

import (
	"path/filepath"
	"testing"

	"jobproof/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// Semantic boosting is enabled with repository defaults; options may adjust
// any field afterward.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.OutputDir = filepath.Join(base, "runs")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.BaselinePath = filepath.Join(base, "state", "baseline.json")
	cfg.Semantic.CacheDir = filepath.Join(base, "state", "embeddings")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithSemanticDisabled turns off the semantic boost pass on the test config.
func WithSemanticDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Semantic.Enabled = false
	}
}

// WithRedactionOverride allows publication despite redaction findings.
func WithRedactionOverride() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Redaction.AllowOverride = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
