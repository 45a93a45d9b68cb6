package textutil_test

import (
	"reflect"
	"testing"

	"jobproof/internal/textutil"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  Go  Engineer ", "go engineer"},
		{"Senior, Go/Platform (Remote)", "senior go platform remote"},
		{"C++ &   Rust!!", "c rust"},
		{"GRÜN über", "grün über"},
	}
	for _, tt := range tests {
		if got := textutil.NormalizeText(tt.in); got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := textutil.Tokenize("Go, Kubernetes & CI/CD pipelines!")
	want := []string{"kubernetes", "pipelines"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
	if len(textutil.Tokenize("a b c")) != 0 {
		t.Fatal("short tokens should be filtered")
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "unknown"},
		{"  ", "unknown"},
		{"Engineering", "engineering"},
		{"Data / ML", "data___ml"},
		{"platform-eng_2", "platform-eng_2"},
		{"///", "unknown"},
	}
	for _, tt := range tests {
		if got := textutil.SanitizeToken(tt.in); got != tt.want {
			t.Errorf("SanitizeToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
