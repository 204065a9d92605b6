package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

// applicationsFile is the --applications layout. A bare JSON array of
// applications is accepted too.
type applicationsFile struct {
	Job          domain.JobPosting    `json:"job"`
	Applications []domain.Application `json:"applications"`
}

func readInput(path string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

func loadApplications(path string) (applicationsFile, error) {
	b, err := readInput(path)
	if err != nil {
		return applicationsFile{}, err
	}
	var doc applicationsFile
	if trimmed := bytes.TrimSpace(b); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &doc.Applications)
	} else {
		err = json.Unmarshal(b, &doc)
	}
	if err != nil {
		return applicationsFile{}, fmt.Errorf("parse %s: %w", path, err)
	}
	for i, a := range doc.Applications {
		if a.ID == "" {
			return applicationsFile{}, fmt.Errorf("applications[%d]: applicationId required", i)
		}
		if a.CandidateID == "" && a.Profile != nil {
			doc.Applications[i].CandidateID = a.Profile.CandidateID
		}
	}
	return doc, nil
}

// loadProfile reads a snapshot as JSON, or YAML for .yaml/.yml files.
func loadProfile(path string) (domain.CandidateProfileSnapshot, error) {
	b, err := readInput(path)
	if err != nil {
		return domain.CandidateProfileSnapshot{}, err
	}
	var p domain.CandidateProfileSnapshot
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &p)
	default:
		err = json.Unmarshal(b, &p)
	}
	if err != nil {
		return domain.CandidateProfileSnapshot{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return p, nil
}

// openOutput returns stdout for an empty path.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printIssues(w io.Writer, issues []domain.ValidationIssue) {
	for _, i := range issues {
		if i.RuleIndex >= 0 {
			fmt.Fprintf(w, "rules[%d] %s %s: %s\n", i.RuleIndex, i.Code, i.FieldKey, i.Message)
			continue
		}
		fmt.Fprintf(w, "%s %s: %s\n", i.Code, i.FieldKey, i.Message)
	}
}
