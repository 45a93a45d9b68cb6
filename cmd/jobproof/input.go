package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"jobproof/internal/jobs"
	"jobproof/internal/pipeline"
)

// loadJobs reads an ordered sequence of job records from a JSON file, or
// from stdin when path is "-".
func loadJobs(path string) ([]jobs.Record, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read jobs: %w", err)
	}

	var records []jobs.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse jobs: %w", err)
	}
	return records, nil
}

// loadProfileSkills returns just the skill list from a candidate profile.
func loadProfileSkills(path string) ([]string, error) {
	profile, err := pipeline.LoadProfile(path)
	if err != nil {
		return nil, err
	}
	return profile.Skills, nil
}
