package redaction

import (
	"fmt"
	"sort"
	"strings"
)

// Finding is one detected secret-like match. Snippet is redacted: it keeps
// the first four characters of the match and masks the rest.
type Finding struct {
	Pattern string `json:"pattern"`
	Snippet string `json:"snippet"`
	Offset  int    `json:"offset"`
	Path    string `json:"path,omitempty"`
}

// Scan applies every pattern matcher over free text and returns all
// findings ordered by byte offset. The paired AWS secret heuristic only
// fires when an access key id is present in the same text.
func Scan(text string) []Finding {
	var findings []Finding
	for _, p := range patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			findings = append(findings, Finding{
				Pattern: p.name,
				Snippet: redact(text[loc[0]:loc[1]]),
				Offset:  loc[0],
			})
		}
	}
	if awsKeyIDPresent.MatchString(text) {
		for _, loc := range awsSecretPair.re.FindAllStringIndex(text, -1) {
			findings = append(findings, Finding{
				Pattern: awsSecretPair.name,
				Snippet: redact(text[loc[0]:loc[1]]),
				Offset:  loc[0],
			})
		}
	}
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Offset != findings[j].Offset {
			return findings[i].Offset < findings[j].Offset
		}
		return findings[i].Pattern < findings[j].Pattern
	})
	return findings
}

// ScanValue walks nested mappings and sequences and scans every string
// leaf, reporting the dotted/indexed path of each match.
func ScanValue(value any) []Finding {
	var findings []Finding
	walkValue("", value, &findings)
	return findings
}

func walkValue(path string, value any, findings *[]Finding) {
	switch t := value.(type) {
	case string:
		for _, f := range Scan(t) {
			f.Path = path
			*findings = append(*findings, f)
		}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walkValue(joinPath(path, k), t[k], findings)
		}
	case []any:
		for i, item := range t {
			walkValue(fmt.Sprintf("%s[%d]", path, i), item, findings)
		}
	case []string:
		for i, item := range t {
			walkValue(fmt.Sprintf("%s[%d]", path, i), item, findings)
		}
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// redact keeps the first four characters of a match and masks the rest so a
// finding can be reported without reproducing the secret.
func redact(match string) string {
	const keep = 4
	if len(match) <= keep {
		return strings.Repeat("*", len(match))
	}
	return match[:keep] + strings.Repeat("*", len(match)-keep)
}
