package identity_test

import (
	"regexp"
	"testing"

	"jobproof/internal/identity"
	"jobproof/internal/jobs"
)

var hexPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestResolveURLPriority(t *testing.T) {
	job := jobs.Record{
		"apply_url":  "https://jobs.example.com/p/123",
		"detail_url": "https://jobs.example.com/detail/123",
		"title":      "Platform Engineer",
	}
	if got := identity.Resolve(job); got != "https://jobs.example.com/p/123" {
		t.Fatalf("unexpected identity: %q", got)
	}
}

func TestResolveStripsQueryAndFragment(t *testing.T) {
	a := jobs.Record{"apply_url": "https://x/1?utm=a"}
	b := jobs.Record{"apply_url": "https://x/1?utm=b"}
	c := jobs.Record{"apply_url": "https://x/1#section"}

	if identity.Resolve(a) != identity.Resolve(b) {
		t.Fatal("query parameters must not affect identity")
	}
	if identity.Resolve(a) != identity.Resolve(c) {
		t.Fatal("fragments must not affect identity")
	}
	if got := identity.Resolve(a); got != "https://x/1" {
		t.Fatalf("unexpected identity: %q", got)
	}
}

func TestResolveStableUnderFieldAdditions(t *testing.T) {
	base := jobs.Record{"apply_url": " https://x/1 "}
	augmented := jobs.Record{"apply_url": " https://x/1 ", "description": "new text"}
	if identity.Resolve(base) != identity.Resolve(augmented) {
		t.Fatal("adding a description must not change identity when a URL is present")
	}

	titled := jobs.Record{"title": " Staff Engineer ", "location": "Remote"}
	titledAug := titled.Clone()
	titledAug["description"] = "long description"
	if identity.Resolve(titled) != identity.Resolve(titledAug) {
		t.Fatal("adding a description must not change identity when title/location is present")
	}
	if got := identity.Resolve(titled); got != "staff engineer|remote" {
		t.Fatalf("unexpected title/location identity: %q", got)
	}
}

func TestResolveTitleOnly(t *testing.T) {
	if got := identity.Resolve(jobs.Record{"title": "SRE"}); got != "sre|" {
		t.Fatalf("unexpected identity: %q", got)
	}
}

func TestResolveHashFallbackDeterminism(t *testing.T) {
	first := identity.Resolve(jobs.Record{})
	second := identity.Resolve(jobs.Record{})
	if first != second {
		t.Fatalf("fallback identity not deterministic: %q vs %q", first, second)
	}
	if !hexPattern.MatchString(first) {
		t.Fatalf("fallback identity is not a 64-char hex digest: %q", first)
	}

	other := identity.Resolve(jobs.Record{"provider_ref": "abc"})
	if other == first {
		t.Fatal("different content should produce a different fallback identity")
	}
}

func TestFingerprintFieldSensitivity(t *testing.T) {
	base := jobs.Record{
		"title":       "Platform Engineer",
		"location":    "Remote",
		"team":        "Infra",
		"description": "build things",
		"score":       55,
		"run_id":      "run-1",
		"fetched_at":  "2026-01-01T00:00:00Z",
	}
	baseFP := identity.Fingerprint(base)

	changedDesc := base.Clone()
	changedDesc["description"] = "build other things"
	if identity.Fingerprint(changedDesc) == baseFP {
		t.Fatal("description change must change the fingerprint")
	}

	for _, field := range []string{"score", "run_id", "fetched_at"} {
		volatile := base.Clone()
		volatile[field] = "something else"
		if identity.Fingerprint(volatile) != baseFP {
			t.Fatalf("changing %s must not change the fingerprint", field)
		}
	}

	changedTitle := base.Clone()
	changedTitle["title"] = "Senior Platform Engineer"
	if identity.Fingerprint(changedTitle) == baseFP {
		t.Fatal("title change must change the fingerprint")
	}
}

func TestFingerprintDescriptionAliases(t *testing.T) {
	explicit := jobs.Record{"title": "A", "description_text": "text"}
	generic := jobs.Record{"title": "A", "description": "text"}
	if identity.Fingerprint(explicit) != identity.Fingerprint(generic) {
		t.Fatal("aliased descriptions with equal content should fingerprint identically")
	}
}

func TestCanonicalJSONStable(t *testing.T) {
	v := map[string]any{
		"b":    2,
		"a":    "one",
		"list": []any{1, "two", true},
		"nest": map[string]any{"z": 1.5, "y": nil},
	}
	want := `{"a":"one","b":"2","list":["1","two","true"],"nest":{"y":"","z":"1.5"}}`
	if got := identity.CanonicalJSON(v); got != want {
		t.Fatalf("canonical JSON mismatch:\n got %s\nwant %s", got, want)
	}
}
