// Package redaction scans text and structured payloads for secret-like
// patterns and gates artifact publication on the result.
//
// The guard fails closed: any finding without an explicit operator override
// blocks publication. Findings identify the pattern and location but never
// reproduce the matched secret value, so they are safe to log.
package redaction
