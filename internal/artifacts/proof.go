package artifacts

import (
	"io/fs"
	"path/filepath"
	"sort"

	"jobproof/internal/fileutil"
)

// ProofEntry is one file in a proof bundle manifest.
type ProofEntry struct {
	Path      string `json:"path"`
	SHA256    string `json:"sha256"`
	SizeBytes int64  `json:"size_bytes"`
}

// BuildProofBundle walks dir and returns an entry for every regular file,
// sorted by slash-separated relative path. The listing is a pure function of
// the bundle's contents.
func BuildProofBundle(dir string) ([]ProofEntry, error) {
	var entries []ProofEntry
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		hash, size, err := fileutil.HashFile(path)
		if err != nil {
			return err
		}
		entries = append(entries, ProofEntry{
			Path:      filepath.ToSlash(rel),
			SHA256:    hash,
			SizeBytes: size,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}
