package artifacts

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"jobproof/internal/fileutil"
)

// HashAlgo names the only hash algorithm the verifier produces.
const HashAlgo = "sha256"

// Record describes one verifiable artifact: a declared output file with its
// recorded hash and size. A record is valid only while rehashing the file at
// Path reproduces SHA256.
type Record struct {
	Path     string `json:"path"`
	SHA256   string `json:"sha256"`
	Bytes    int64  `json:"bytes"`
	HashAlgo string `json:"hash_algo"`
}

// Mismatch reasons, from malformed metadata to a differing hash.
const (
	ReasonInvalidMetadata   = "invalid_metadata"
	ReasonMissingPathOrHash = "missing_path_or_hash"
	ReasonMissingFile       = "missing_file"
	ReasonMismatch          = "mismatch"
)

// Mismatch is one failed verification entry.
type Mismatch struct {
	Key      string `json:"key"`
	Reason   string `json:"reason"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
}

// Build hashes each declared artifact under baseDir and records its size.
// declared maps logical keys to paths relative to baseDir. A declared file
// that does not exist is omitted; absence is not an error at build time.
func Build(baseDir string, declared map[string]string) (map[string]Record, error) {
	records := make(map[string]Record, len(declared))
	for key, rel := range declared {
		path := resolvePath(baseDir, rel)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		hash, size, err := fileutil.HashFile(path)
		if err != nil {
			return nil, err
		}
		records[key] = Record{
			Path:     rel,
			SHA256:   hash,
			Bytes:    size,
			HashAlgo: HashAlgo,
		}
	}
	return records, nil
}

// Verify recomputes every record's hash and compares it to the recorded
// value. All mismatches are collected; ok is true iff there are none.
// Results are ordered by logical key so output is stable.
func Verify(baseDir string, records map[string]Record) (bool, []Mismatch) {
	var mismatches []Mismatch
	for _, key := range sortedRecordKeys(records) {
		rec := records[key]
		if m, ok := verifyRecord(baseDir, key, rec); !ok {
			mismatches = append(mismatches, m)
		}
	}
	return len(mismatches) == 0, mismatches
}

func verifyRecord(baseDir, key string, rec Record) (Mismatch, bool) {
	if strings.TrimSpace(rec.Path) == "" || strings.TrimSpace(rec.SHA256) == "" {
		return Mismatch{Key: key, Reason: ReasonMissingPathOrHash, Expected: rec.SHA256}, false
	}
	path := resolvePath(baseDir, rec.Path)
	if _, err := os.Stat(path); err != nil {
		return Mismatch{Key: key, Reason: ReasonMissingFile, Expected: rec.SHA256}, false
	}
	actual, _, err := fileutil.HashFile(path)
	if err != nil {
		return Mismatch{Key: key, Reason: ReasonMissingFile, Expected: rec.SHA256}, false
	}
	if actual != rec.SHA256 {
		return Mismatch{Key: key, Reason: ReasonMismatch, Expected: rec.SHA256, Actual: actual}, false
	}
	return Mismatch{}, true
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

func sortedRecordKeys(records map[string]Record) []string {
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
