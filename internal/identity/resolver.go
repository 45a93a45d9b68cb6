package identity

import (
	"strings"

	"jobproof/internal/jobs"
)

// Resolve derives the stable dedup key for a job record.
//
// Priority order: the apply URL with query and fragment stripped, then the
// detail URL likewise, then "title|location" lowercased and trimmed, and
// finally the SHA-256 of the record's canonical JSON when nothing else is
// usable. The key is unaffected by unrelated field additions whenever a URL
// or title/location is present.
func Resolve(job jobs.Record) string {
	if u := strings.TrimSpace(job.String(jobs.FieldApplyURL)); u != "" {
		return stripQueryFragment(u)
	}
	if u := strings.TrimSpace(job.String(jobs.FieldDetailURL)); u != "" {
		return stripQueryFragment(u)
	}

	title := strings.TrimSpace(job.String(jobs.FieldTitle))
	location := strings.TrimSpace(job.Location())
	if title != "" || location != "" {
		return strings.ToLower(title) + "|" + strings.ToLower(location)
	}

	return HashCanonical(job)
}

// stripQueryFragment drops everything from the first '?' or '#' onward.
// Plain string slicing keeps the result a pure function of the input even
// for URLs the net/url parser would reject.
func stripQueryFragment(u string) string {
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	if i := strings.IndexByte(u, '#'); i >= 0 {
		u = u[:i]
	}
	return u
}
