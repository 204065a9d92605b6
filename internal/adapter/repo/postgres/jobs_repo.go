package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

// JobRepo loads job postings for exports and existence checks.
type JobRepo struct{ Pool PgxPool }

// NewJobRepo constructs a JobRepo with the given pool.
func NewJobRepo(p PgxPool) *JobRepo { return &JobRepo{Pool: p} }

// Get loads a job by id.
func (r *JobRepo) Get(ctx domain.Context, id string) (domain.JobPosting, error) {
	ctx, span := otel.Tracer("repo.jobs").Start(ctx, "jobs.Get")
	defer span.End()
	q := `SELECT id, title, department FROM jobs WHERE id=$1`
	var j domain.JobPosting
	if err := r.Pool.QueryRow(ctx, q, id).Scan(&j.ID, &j.Title, &j.Department); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.JobPosting{}, fmt.Errorf("op=job.get: %w", domain.ErrNotFound)
		}
		return domain.JobPosting{}, fmt.Errorf("op=job.get: %w", err)
	}
	return j, nil
}

// Upsert creates or renames a job posting.
func (r *JobRepo) Upsert(ctx domain.Context, j domain.JobPosting) error {
	ctx, span := otel.Tracer("repo.jobs").Start(ctx, "jobs.Upsert")
	defer span.End()
	q := `INSERT INTO jobs (id, title, department) VALUES ($1,$2,$3)
	      ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, department=EXCLUDED.department`
	if _, err := r.Pool.Exec(ctx, q, j.ID, j.Title, j.Department); err != nil {
		return fmt.Errorf("op=job.upsert: %w", err)
	}
	return nil
}
