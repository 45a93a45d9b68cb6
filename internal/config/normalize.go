package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeSemantic(); err != nil {
		return err
	}
	c.normalizeScoring()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.BaselinePath) != "" {
		if c.Paths.BaselinePath, err = expandPath(c.Paths.BaselinePath); err != nil {
			return fmt.Errorf("paths.baseline_path: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeSemantic() error {
	if strings.TrimSpace(c.Semantic.CacheDir) == "" {
		c.Semantic.CacheDir = filepath.Join(c.Paths.StateDir, "embeddings")
	}
	var err error
	if c.Semantic.CacheDir, err = expandPath(c.Semantic.CacheDir); err != nil {
		return fmt.Errorf("semantic.cache_dir: %w", err)
	}
	if strings.TrimSpace(c.Semantic.ModelID) == "" {
		c.Semantic.ModelID = defaultModelID
	}
	if c.Semantic.Dimensions <= 0 {
		c.Semantic.Dimensions = defaultDimensions
	}
	if c.Semantic.TopK <= 0 {
		c.Semantic.TopK = defaultTopK
	}
	if c.Semantic.MaxJobs <= 0 {
		c.Semantic.MaxJobs = defaultMaxJobs
	}
	return nil
}

func (c *Config) normalizeScoring() {
	if c.Scoring.BlendWeight == 0 {
		c.Scoring.BlendWeight = defaultBlendWeight
	}
	if c.Scoring.TopReasons <= 0 {
		c.Scoring.TopReasons = defaultTopReasons
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
