// Package ledger persists run outcomes in an append-only SQLite table.
//
// A record is keyed by (run_id, candidate_id); Append uses insert-if-absent
// semantics, so a duplicate append is a silent no-op and the first record is
// preserved forever. Records carry only run id, candidate id, revision,
// status, timestamp, and artifact paths; no secret or credential material is
// ever stored here.
//
// Treat this package as the single source of truth for ledger semantics;
// schema changes bump schemaVersion in schema.go.
package ledger
