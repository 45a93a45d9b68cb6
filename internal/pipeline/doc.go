// Package pipeline orchestrates a scoring run end to end: identity and
// fingerprint derivation, score blending, semantic boost, delta against the
// stored baseline, artifact emission with verifiable hashes, and the run
// ledger entry.
//
// Every artifact the runner writes is free of timestamps and run metadata,
// so re-running the pipeline against the same inputs reproduces the files
// byte for byte; the manifest it emits is the proof. Publication is gated on
// the redaction guard and fails closed.
package pipeline
