package jobs

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is a raw job posting as decoded from scraper output. Keys are
// provider-defined; the pipeline only interprets a small set of well-known
// fields and carries the rest through untouched.
type Record map[string]any

// Well-known record fields.
const (
	FieldApplyURL         = "apply_url"
	FieldDetailURL        = "detail_url"
	FieldTitle            = "title"
	FieldLocation         = "location"
	FieldTeam             = "team"
	FieldHeuristicScore   = "heuristic_score"
	FieldHeuristicReasons = "heuristic_reasons"
	FieldAIPayload        = "ai_enrichment"
)

// descriptionAliases lists description sources in priority order, from the
// explicit description text down to raw scraped markup.
var descriptionAliases = []string{
	"description_text",
	"job_description",
	"description",
	"raw_markup",
}

// locationAliases lists the accepted spellings of the location field.
var locationAliases = []string{"location", "job_location"}

// String returns the record's value for key coerced to a string, or "" when
// the key is absent.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	return CoerceString(v)
}

// FirstString returns the first non-empty value among the given keys.
func (r Record) FirstString(keys ...string) string {
	for _, key := range keys {
		if s := strings.TrimSpace(r.String(key)); s != "" {
			return s
		}
	}
	return ""
}

// Description returns the record's description text, trying each alias in
// priority order.
func (r Record) Description() string {
	return r.FirstString(descriptionAliases...)
}

// Location returns the record's location, trying each alias in order.
func (r Record) Location() string {
	return r.FirstString(locationAliases...)
}

// Int returns the record's value for key coerced to an int. Floats are
// truncated, numeric strings parsed; anything else yields 0.
func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}

// StringSlice returns the record's value for key as a string slice. A scalar
// value is wrapped in a single-element slice.
func (r Record) StringSlice(key string) []string {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}
	return coerceStringSlice(v)
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// CoerceString renders any scalar value as a stable string. Floats drop a
// trailing ".0" so a JSON-decoded integer prints the same as a native int.
func CoerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func coerceStringSlice(v any) []string {
	switch t := v.(type) {
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, CoerceString(item))
		}
		return out
	default:
		return []string{CoerceString(v)}
	}
}
