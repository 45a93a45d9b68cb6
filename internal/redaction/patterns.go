package redaction

import "regexp"

// pattern pairs a stable name with its matcher. Names appear in findings
// and logs; the matched text never does.
type pattern struct {
	name string
	re   *regexp.Regexp
}

var patterns = []pattern{
	{"aws_access_key_id", regexp.MustCompile(`\b(?:AKIA|ASIA)[0-9A-Z]{16}\b`)},
	{"bearer_token", regexp.MustCompile(`(?i)\bbearer\s+[a-z0-9._~+/-]{16,}=*`)},
	{"discord_webhook_url", regexp.MustCompile(`https://discord(?:app)?\.com/api/webhooks/\d+/[\w-]+`)},
	{"slack_webhook_url", regexp.MustCompile(`https://hooks\.slack\.com/services/T[0-9A-Z]+/B[0-9A-Z]+/[0-9a-zA-Z]+`)},
	{"openai_api_key", regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{20,}\b`)},
	{"anthropic_api_key", regexp.MustCompile(`\bsk-ant-[A-Za-z0-9_-]{20,}\b`)},
	{"github_pat", regexp.MustCompile(`\b(?:ghp_[A-Za-z0-9]{36}|github_pat_[A-Za-z0-9_]{22,})\b`)},
	{"gitlab_pat", regexp.MustCompile(`\bglpat-[A-Za-z0-9_-]{20,}\b`)},
}

// awsSecretPair matches a 40-character base64-ish value near an AWS-style
// assignment. High entropy alone is not enough: the pair heuristic only
// fires when an access key id is also present in the same text, which keeps
// ordinary hashes and tokens from being flagged.
var awsSecretPair = pattern{
	"aws_secret_access_key",
	regexp.MustCompile(`(?i)aws.{0,20}['"][0-9a-zA-Z/+]{40}['"]`),
}

// awsKeyIDPresent reports whether the text contains an AWS access key id,
// which arms the paired-secret heuristic.
var awsKeyIDPresent = regexp.MustCompile(`\b(?:AKIA|ASIA)[0-9A-Z]{16}\b`)
