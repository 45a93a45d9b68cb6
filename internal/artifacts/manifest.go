package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"jobproof/internal/fileutil"
)

// WriteManifest persists records as the verifiable-artifacts manifest:
// a JSON object of logical key to record, with stable key order.
func WriteManifest(path string, records map[string]Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	data = append(data, '\n')
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// LoadManifest reads a manifest file, tolerating malformed entries: an entry
// that is not a record object is returned as a pre-marked mismatch rather
// than aborting the load, so verification can report it alongside the rest.
func LoadManifest(path string) (map[string]Record, []Mismatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read manifest: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("parse manifest: %w", err)
	}

	records := make(map[string]Record, len(raw))
	var malformed []Mismatch
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		var rec Record
		if err := json.Unmarshal(raw[key], &rec); err != nil {
			malformed = append(malformed, Mismatch{Key: key, Reason: ReasonInvalidMetadata})
			continue
		}
		records[key] = rec
	}
	return records, malformed, nil
}
