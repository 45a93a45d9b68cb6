// Package semantic applies a bounded, deterministic boost to ranked job
// scores based on textual similarity with the candidate profile.
//
// Embeddings come from a hashing-based provider rather than a model API, so
// the same text and model id always produce the same vector with no network
// calls. Vectors are cached on disk keyed by (normalized-text hash, model
// id); writes are serialized with a file lock and an entry is never
// overwritten, so a cache key is bound to one value for its lifetime. The
// Embedder interface keeps the boost and threshold logic independent of the
// embedding backend so a real provider can be substituted later.
package semantic
