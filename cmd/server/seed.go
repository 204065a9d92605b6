package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/shortlist-engine/internal/config"
	"github.com/fairyhunter13/shortlist-engine/internal/domain"
	"github.com/fairyhunter13/shortlist-engine/internal/usecase"
)

// devFixtures is the DEV_FIXTURES_FILE layout: jobs and profiles owned by
// other services in production.
type devFixtures struct {
	Jobs     []domain.JobPosting               `yaml:"jobs"`
	Profiles []domain.CandidateProfileSnapshot `yaml:"profiles"`
}

type jobUpserter interface {
	Upsert(ctx domain.Context, j domain.JobPosting) error
}

type profileUpserter interface {
	Upsert(ctx domain.Context, p domain.CandidateProfileSnapshot) error
}

func seedFieldSettings(ctx context.Context, svc usecase.FieldSettingsService, path string) error {
	seed, err := config.LoadFieldSettingsSeed(path)
	if err != nil {
		return err
	}
	n, err := svc.SeedDefaults(ctx, seed)
	if err != nil {
		return err
	}
	slog.Info("field settings seeded", slog.Int("inserted", n), slog.String("file", path))
	return nil
}

func loadDevFixtures(path string) (devFixtures, error) {
	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return devFixtures{}, fmt.Errorf("fixtures file not found: %s", path)
		}
		return devFixtures{}, err
	}
	var doc devFixtures
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return devFixtures{}, fmt.Errorf("yaml parse: %w", err)
	}
	for i, j := range doc.Jobs {
		if j.ID == "" {
			return devFixtures{}, fmt.Errorf("jobs[%d]: id required", i)
		}
	}
	for i, p := range doc.Profiles {
		if p.CandidateID == "" {
			return devFixtures{}, fmt.Errorf("profiles[%d]: candidateId required", i)
		}
	}
	return doc, nil
}

func seedDevFixtures(ctx context.Context, jobs jobUpserter, profiles profileUpserter, path string) error {
	doc, err := loadDevFixtures(path)
	if err != nil {
		return err
	}
	for _, j := range doc.Jobs {
		if err := jobs.Upsert(ctx, j); err != nil {
			return fmt.Errorf("job %s: %w", j.ID, err)
		}
	}
	for _, p := range doc.Profiles {
		if err := profiles.Upsert(ctx, p); err != nil {
			return fmt.Errorf("profile %s: %w", p.CandidateID, err)
		}
	}
	slog.Info("dev fixtures loaded", slog.Int("jobs", len(doc.Jobs)), slog.Int("profiles", len(doc.Profiles)))
	return nil
}
