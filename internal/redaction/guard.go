package redaction

import (
	"errors"
	"fmt"
)

// ErrSecretsDetected is returned when the publication gate finds secret-like
// content and no override is in effect.
var ErrSecretsDetected = errors.New("secrets detected")

// AssertNoSecrets is the publication gate for free text destined for an
// external destination. It fails when any finding exists and allowOverride
// is false. The error names the patterns and locations but not the values.
func AssertNoSecrets(path, text string, allowOverride bool) error {
	findings := Scan(text)
	return gate(path, findings, allowOverride)
}

// AssertNoSecretsValue is the structured-payload variant of the gate.
func AssertNoSecretsValue(path string, value any, allowOverride bool) error {
	findings := ScanValue(value)
	return gate(path, findings, allowOverride)
}

func gate(path string, findings []Finding, allowOverride bool) error {
	if len(findings) == 0 || allowOverride {
		return nil
	}
	first := findings[0]
	loc := fmt.Sprintf("offset %d", first.Offset)
	if first.Path != "" {
		loc = first.Path
	}
	return fmt.Errorf("%w in %s: %s at %s (%d finding(s) total)",
		ErrSecretsDetected, path, first.Pattern, loc, len(findings))
}
