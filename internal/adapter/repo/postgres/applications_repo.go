package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

const uniqueViolation = "23505"

// ApplicationRepo persists job applications.
type ApplicationRepo struct{ Pool PgxPool }

// NewApplicationRepo constructs an ApplicationRepo with the given pool.
func NewApplicationRepo(p PgxPool) *ApplicationRepo { return &ApplicationRepo{Pool: p} }

// Create inserts an application and returns its id (generates one if empty).
// A second application by the same candidate to the same job is ErrConflict.
func (r *ApplicationRepo) Create(ctx domain.Context, a domain.Application) (string, error) {
	ctx, span := otel.Tracer("repo.applications").Start(ctx, "applications.Create")
	defer span.End()
	span.SetAttributes(attribute.String("job.id", a.JobID))
	id := a.ID
	if id == "" {
		id = uuid.New().String()
	}
	applied := a.AppliedAt
	if applied.IsZero() {
		applied = time.Now().UTC()
	}
	q := `INSERT INTO applications (id, job_id, candidate_id, applied_at) VALUES ($1,$2,$3,$4)`
	if _, err := r.Pool.Exec(ctx, q, id, a.JobID, a.CandidateID, applied); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", fmt.Errorf("op=application.create: %w: candidate already applied", domain.ErrConflict)
		}
		return "", fmt.Errorf("op=application.create: %w", err)
	}
	return id, nil
}

// ListByJob returns the job's applications without profiles, oldest first.
func (r *ApplicationRepo) ListByJob(ctx domain.Context, jobID string) ([]domain.Application, error) {
	ctx, span := otel.Tracer("repo.applications").Start(ctx, "applications.ListByJob")
	defer span.End()
	q := `SELECT id, job_id, candidate_id, applied_at FROM applications WHERE job_id=$1 ORDER BY applied_at, id`
	rows, err := r.Pool.Query(ctx, q, jobID)
	if err != nil {
		return nil, fmt.Errorf("op=application.list_by_job: %w", err)
	}
	defer rows.Close()
	out := []domain.Application{}
	for rows.Next() {
		var a domain.Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.AppliedAt); err != nil {
			return nil, fmt.Errorf("op=application.list_by_job: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=application.list_by_job: %w", err)
	}
	span.SetAttributes(attribute.Int("applications.count", len(out)))
	return out, nil
}

// Exists reports whether the candidate already applied to the job.
func (r *ApplicationRepo) Exists(ctx domain.Context, jobID, candidateID string) (bool, error) {
	ctx, span := otel.Tracer("repo.applications").Start(ctx, "applications.Exists")
	defer span.End()
	q := `SELECT EXISTS (SELECT 1 FROM applications WHERE job_id=$1 AND candidate_id=$2)`
	var ok bool
	if err := r.Pool.QueryRow(ctx, q, jobID, candidateID).Scan(&ok); err != nil {
		return false, fmt.Errorf("op=application.exists: %w", err)
	}
	return ok, nil
}
