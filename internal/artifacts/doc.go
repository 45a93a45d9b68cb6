// Package artifacts computes and re-verifies content hashes for a run's
// declared output files.
//
// Build records {path, sha256, bytes, hash_algo} for each declared artifact
// that exists; Verify recomputes every hash and collects the complete set of
// mismatches in one pass rather than failing on the first. Together they
// back the replay check: re-running a pipeline against recorded inputs and
// verifying the fresh outputs against a prior manifest proves bit-for-bit
// reproducibility.
package artifacts
