// Package jobs defines the job record shape consumed by the pipeline and the
// normalization boundary for AI enrichment payloads.
//
// Scraped job postings arrive as loosely-shaped JSON objects; Record keeps
// that flexibility while exposing typed accessors for the fields the pipeline
// cares about. AI payloads, by contrast, are normalized into a fixed-shape
// struct at the boundary so no unvalidated dynamic map travels further into
// scoring or artifact generation.
package jobs
