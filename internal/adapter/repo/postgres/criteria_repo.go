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

// CriteriaRepo stores one CriteriaSet per job as a JSONB rule list.
type CriteriaRepo struct{ Pool PgxPool }

// NewCriteriaRepo constructs a CriteriaRepo with the given pool.
func NewCriteriaRepo(p PgxPool) *CriteriaRepo { return &CriteriaRepo{Pool: p} }

// Get loads a job's criteria; ErrNotFound when never saved.
func (r *CriteriaRepo) Get(ctx domain.Context, jobID string) (domain.CriteriaSet, error) {
	ctx, span := otel.Tracer("repo.criteria").Start(ctx, "criteria.Get")
	defer span.End()
	q := `SELECT rules, updated_at FROM criteria_sets WHERE job_id=$1`
	var raw []byte
	set := domain.CriteriaSet{JobID: jobID}
	if err := r.Pool.QueryRow(ctx, q, jobID).Scan(&raw, &set.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CriteriaSet{}, fmt.Errorf("op=criteria.get: %w", domain.ErrNotFound)
		}
		return domain.CriteriaSet{}, fmt.Errorf("op=criteria.get: %w", err)
	}
	if err := json.Unmarshal(raw, &set.Rules); err != nil {
		return domain.CriteriaSet{}, fmt.Errorf("op=criteria.get: decode rules: %w", err)
	}
	return set, nil
}

// Replace overwrites the whole rule list of a job.
func (r *CriteriaRepo) Replace(ctx domain.Context, set domain.CriteriaSet) error {
	ctx, span := otel.Tracer("repo.criteria").Start(ctx, "criteria.Replace")
	defer span.End()
	rules := set.Rules
	if rules == nil {
		rules = []domain.CriteriaRule{}
	}
	raw, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("op=criteria.replace: %w", err)
	}
	updated := set.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	}
	q := `INSERT INTO criteria_sets (job_id, rules, updated_at) VALUES ($1,$2,$3)
	      ON CONFLICT (job_id) DO UPDATE SET rules=EXCLUDED.rules, updated_at=EXCLUDED.updated_at`
	if _, err := r.Pool.Exec(ctx, q, set.JobID, raw, updated); err != nil {
		return fmt.Errorf("op=criteria.replace: %w", err)
	}
	return nil
}
