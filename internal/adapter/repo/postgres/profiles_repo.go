package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

// ProfileRepo reads candidate profile snapshots stored as JSONB.
type ProfileRepo struct{ Pool PgxPool }

// NewProfileRepo constructs a ProfileRepo with the given pool.
func NewProfileRepo(p PgxPool) *ProfileRepo { return &ProfileRepo{Pool: p} }

// GetProfile returns the stored snapshot. CapturedAt is the row's last update
// so re-reading an unchanged profile yields an identical snapshot.
func (r *ProfileRepo) GetProfile(ctx domain.Context, candidateID string) (domain.CandidateProfileSnapshot, error) {
	ctx, span := otel.Tracer("repo.profiles").Start(ctx, "profiles.GetProfile")
	defer span.End()
	q := `SELECT profile, updated_at FROM candidate_profiles WHERE candidate_id=$1`
	var raw []byte
	var updated time.Time
	if err := r.Pool.QueryRow(ctx, q, candidateID).Scan(&raw, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CandidateProfileSnapshot{}, fmt.Errorf("op=profile.get: %w", domain.ErrNotFound)
		}
		return domain.CandidateProfileSnapshot{}, fmt.Errorf("op=profile.get: %w", err)
	}
	var p domain.CandidateProfileSnapshot
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.CandidateProfileSnapshot{}, fmt.Errorf("op=profile.get: decode: %w", err)
	}
	p.CandidateID = candidateID
	p.CapturedAt = updated.UTC()
	return p, nil
}

// Upsert stores a profile document, replacing any previous one.
func (r *ProfileRepo) Upsert(ctx domain.Context, p domain.CandidateProfileSnapshot) error {
	ctx, span := otel.Tracer("repo.profiles").Start(ctx, "profiles.Upsert")
	defer span.End()
	p.CapturedAt = time.Time{}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("op=profile.upsert: %w", err)
	}
	q := `INSERT INTO candidate_profiles (candidate_id, profile, updated_at) VALUES ($1,$2,$3)
	      ON CONFLICT (candidate_id) DO UPDATE SET profile=EXCLUDED.profile, updated_at=EXCLUDED.updated_at`
	if _, err := r.Pool.Exec(ctx, q, p.CandidateID, raw, time.Now().UTC()); err != nil {
		return fmt.Errorf("op=profile.upsert: %w", err)
	}
	return nil
}
