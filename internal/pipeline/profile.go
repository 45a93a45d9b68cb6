package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Profile is the candidate profile jobs are scored against.
type Profile struct {
	CandidateID string   `json:"candidate_id"`
	ProfileText string   `json:"profile_text"`
	Skills      []string `json:"skills"`
}

// LoadProfile reads a candidate profile from a JSON file.
func LoadProfile(path string) (Profile, error) {
	var p Profile
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse profile: %w", err)
	}
	if strings.TrimSpace(p.CandidateID) == "" {
		return p, fmt.Errorf("profile: candidate_id required")
	}
	return p, nil
}
