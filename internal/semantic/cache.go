package semantic

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"jobproof/internal/identity"
	"jobproof/internal/textutil"
)

// Cache persists embedding vectors under a state directory, keyed by
// (normalized-text hash, model id). Entries are written once and never
// mutated; concurrent writers for the same key are serialized through a
// directory-scoped file lock with first-write-wins semantics.
type Cache struct {
	dir  string
	lock *flock.Flock
}

// OpenCache ensures the cache directory exists and returns a handle.
func OpenCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create embedding cache dir: %w", err)
	}
	return &Cache{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, ".write.lock")),
	}, nil
}

// Key derives the cache key for text under a model: the SHA-256 of the
// normalized text plus the sanitized model id.
func Key(text, modelID string) string {
	return identity.HashHex(textutil.NormalizeText(text)) + "-" + textutil.SanitizeToken(modelID)
}

// Get returns the cached vector for key, reporting whether it was present.
func (c *Cache) Get(key string) ([]float64, bool) {
	data, err := os.ReadFile(c.entryPath(key))
	if err != nil {
		return nil, false
	}
	var vec []float64
	if err := json.Unmarshal(data, &vec); err != nil {
		return nil, false
	}
	return vec, true
}

// Put stores a vector for key. If the key already exists the write is a
// no-op: an entry, once written, is never replaced with a different value.
func (c *Cache) Put(key string, vec []float64) error {
	if err := c.lock.Lock(); err != nil {
		return fmt.Errorf("acquire cache lock: %w", err)
	}
	defer func() { _ = c.lock.Unlock() }()

	path := c.entryPath(key)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	data, err := json.Marshal(vec)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("publish cache entry: %w", err)
	}
	return nil
}

func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, key+".json")
}
