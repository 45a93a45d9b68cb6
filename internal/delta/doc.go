// Package delta compares a pipeline run's job set against a stored baseline
// and classifies every job as new, removed, changed, or unchanged.
//
// Jobs are matched by identity key. Field comparison skips volatile run
// metadata (timestamps, run ids) so a rescrape with identical content
// reports zero changes.
package delta
