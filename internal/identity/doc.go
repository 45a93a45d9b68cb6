// Package identity derives stable identities and content fingerprints for
// job records.
//
// The identity key is the canonical dedup key: it survives cosmetic field
// additions and URL query/fragment churn, falling back to a canonical-JSON
// hash only when a record carries no usable URL, title, or location. The
// content fingerprint summarizes only the content-bearing fields (title,
// location, team, description) so downstream change detection ignores
// scores, timestamps, and run metadata.
//
// All hashing in this package uses lowercase hex SHA-256 over canonical JSON
// with sorted keys and stable string coercion of non-string values.
package identity
