package identity

import "strings"

// volatileFields are run metadata excluded from content comparison: they
// change between pipeline runs without the posting itself changing.
var volatileFields = map[string]struct{}{
	"fetched_at":  {},
	"scraped_at":  {},
	"enriched_at": {},
	"scored_at":   {},
	"created_at":  {},
	"updated_at":  {},
	"run_id":      {},
}

// IsVolatile reports whether a field name carries run metadata rather than
// job content. Any *_at suffix counts as a timestamp.
func IsVolatile(field string) bool {
	if _, ok := volatileFields[field]; ok {
		return true
	}
	return strings.HasSuffix(field, "_at") || strings.HasSuffix(field, "_timestamp")
}
