package artifacts_test

import (
	"os"
	"path/filepath"
	"testing"

	"jobproof/internal/artifacts"
	"jobproof/internal/testsupport"
)

func buildFixture(t *testing.T) (string, map[string]artifacts.Record) {
	t.Helper()
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "ranked.json"), `[{"title":"a"}]`)
	testsupport.WriteFile(t, filepath.Join(dir, "delta.json"), `{"new_job_count":0}`)

	records, err := artifacts.Build(dir, map[string]string{
		"ranked": "ranked.json",
		"delta":  "delta.json",
		"absent": "missing.json",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return dir, records
}

func TestBuildSkipsMissingFiles(t *testing.T) {
	_, records := buildFixture(t)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %v", len(records), records)
	}
	if _, ok := records["absent"]; ok {
		t.Fatal("missing files must be omitted at build time")
	}
	for key, rec := range records {
		if rec.HashAlgo != artifacts.HashAlgo {
			t.Errorf("%s: hash_algo = %q", key, rec.HashAlgo)
		}
		if len(rec.SHA256) != 64 {
			t.Errorf("%s: hash length = %d", key, len(rec.SHA256))
		}
		if rec.Bytes <= 0 {
			t.Errorf("%s: bytes = %d", key, rec.Bytes)
		}
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	dir, records := buildFixture(t)
	ok, mismatches := artifacts.Verify(dir, records)
	if !ok || len(mismatches) != 0 {
		t.Fatalf("clean round trip failed: %v", mismatches)
	}
}

func TestVerifyDetectsMutation(t *testing.T) {
	dir, records := buildFixture(t)
	testsupport.WriteFile(t, filepath.Join(dir, "ranked.json"), `[{"title":"tampered"}]`)

	ok, mismatches := artifacts.Verify(dir, records)
	if ok {
		t.Fatal("verify must fail after mutation")
	}
	if len(mismatches) != 1 {
		t.Fatalf("expected exactly one mismatch, got %d: %v", len(mismatches), mismatches)
	}
	m := mismatches[0]
	if m.Key != "ranked" || m.Reason != artifacts.ReasonMismatch {
		t.Fatalf("unexpected mismatch: %+v", m)
	}
	if m.Expected == "" || m.Actual == "" || m.Expected == m.Actual {
		t.Fatalf("mismatch should carry differing hashes: %+v", m)
	}
}

func TestVerifyMissingFile(t *testing.T) {
	dir, records := buildFixture(t)
	if err := os.Remove(filepath.Join(dir, "delta.json")); err != nil {
		t.Fatal(err)
	}
	ok, mismatches := artifacts.Verify(dir, records)
	if ok || len(mismatches) != 1 || mismatches[0].Reason != artifacts.ReasonMissingFile {
		t.Fatalf("unexpected result: ok=%v mismatches=%v", ok, mismatches)
	}
}

func TestVerifyMissingPathOrHash(t *testing.T) {
	dir := t.TempDir()
	records := map[string]artifacts.Record{
		"nopath": {SHA256: "deadbeef", HashAlgo: artifacts.HashAlgo},
		"nohash": {Path: "ranked.json", HashAlgo: artifacts.HashAlgo},
	}
	ok, mismatches := artifacts.Verify(dir, records)
	if ok || len(mismatches) != 2 {
		t.Fatalf("unexpected result: ok=%v mismatches=%v", ok, mismatches)
	}
	for _, m := range mismatches {
		if m.Reason != artifacts.ReasonMissingPathOrHash {
			t.Errorf("%s: reason = %q", m.Key, m.Reason)
		}
	}
	// Stable ordering by key.
	if mismatches[0].Key != "nohash" || mismatches[1].Key != "nopath" {
		t.Fatalf("mismatches not sorted by key: %v", mismatches)
	}
}

func TestManifestRoundTrip(t *testing.T) {
	dir, records := buildFixture(t)
	manifestPath := filepath.Join(dir, "manifest.json")
	if err := artifacts.WriteManifest(manifestPath, records); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	loaded, malformed, err := artifacts.LoadManifest(manifestPath)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if len(malformed) != 0 {
		t.Fatalf("unexpected malformed entries: %v", malformed)
	}
	if len(loaded) != len(records) {
		t.Fatalf("loaded %d records, want %d", len(loaded), len(records))
	}
	ok, mismatches := artifacts.Verify(dir, loaded)
	if !ok {
		t.Fatalf("verify after reload failed: %v", mismatches)
	}
}

func TestLoadManifestMalformedEntry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	testsupport.WriteFile(t, path, `{"good":{"path":"a.json","sha256":"x","bytes":1,"hash_algo":"sha256"},"bad":"not an object"}`)

	records, malformed, err := artifacts.LoadManifest(path)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if _, ok := records["good"]; !ok {
		t.Fatal("well-formed entry should survive a malformed sibling")
	}
	if len(malformed) != 1 || malformed[0].Key != "bad" || malformed[0].Reason != artifacts.ReasonInvalidMetadata {
		t.Fatalf("unexpected malformed entries: %v", malformed)
	}
}

func TestWriteManifestDeterministicBytes(t *testing.T) {
	dir, records := buildFixture(t)
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	if err := artifacts.WriteManifest(a, records); err != nil {
		t.Fatal(err)
	}
	if err := artifacts.WriteManifest(b, records); err != nil {
		t.Fatal(err)
	}
	da, err := os.ReadFile(a)
	if err != nil {
		t.Fatal(err)
	}
	db, err := os.ReadFile(b)
	if err != nil {
		t.Fatal(err)
	}
	if string(da) != string(db) {
		t.Fatal("manifest bytes differ across writes of the same records")
	}
}

func TestBuildProofBundle(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "b.json"), "b")
	testsupport.WriteFile(t, filepath.Join(dir, "a.json"), "a")
	testsupport.WriteFile(t, filepath.Join(dir, "sub", "c.json"), "c")

	entries, err := artifacts.BuildProofBundle(dir)
	if err != nil {
		t.Fatalf("build proof bundle: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	wantPaths := []string{"a.json", "b.json", "sub/c.json"}
	for i, e := range entries {
		if e.Path != wantPaths[i] {
			t.Fatalf("entry %d path = %q, want %q", i, e.Path, wantPaths[i])
		}
		if len(e.SHA256) != 64 || e.SizeBytes != 1 {
			t.Fatalf("unexpected entry: %+v", e)
		}
	}
}
