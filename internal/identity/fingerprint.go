package identity

import (
	"jobproof/internal/jobs"
)

// Fingerprint derives the content-change hash for a job record.
//
// The description text (first present alias, from explicit description text
// down to raw markup) is hashed on its own; the fingerprint then covers a
// canonical JSON object of title, location, team, and that description hash.
// Scores, timestamps, and run metadata never contribute, so the fingerprint
// moves if and only if content-bearing fields move.
func Fingerprint(job jobs.Record) string {
	descHash := HashHex(job.Description())
	return HashCanonical(map[string]any{
		"title":            job.String(jobs.FieldTitle),
		"location":         job.Location(),
		"team":             job.String(jobs.FieldTeam),
		"description_hash": descHash,
	})
}
