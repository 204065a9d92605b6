package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fairyhunter13/shortlist-engine/internal/adapter/observability"
	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

// ApplicationService gates application submission on profile completion.
type ApplicationService struct {
	Completion CompletionService
	Apps       domain.ApplicationRepository
	Jobs       domain.JobRepository
	Cache      domain.RankingCache
	Audit      domain.AuditPublisher
	Now        func() time.Time
}

func NewApplicationService(c CompletionService, apps domain.ApplicationRepository, jobs domain.JobRepository, cache domain.RankingCache, a domain.AuditPublisher) ApplicationService {
	return ApplicationService{Completion: c, Apps: apps, Jobs: jobs, Cache: cache, Audit: a, Now: time.Now}
}

// Submit persists an application once the candidate's profile is complete.
// An incomplete profile yields *domain.IncompleteProfileError and nothing is stored.
func (s ApplicationService) Submit(ctx domain.Context, jobID, candidateID string) (domain.Application, error) {
	lg := observability.LoggerFromContext(ctx).With(slog.String("job_id", jobID), slog.String("candidate_id", candidateID))
	if jobID == "" || candidateID == "" {
		return domain.Application{}, fmt.Errorf("%w: job id and candidate id required", domain.ErrInvalidArgument)
	}
	if _, err := s.Jobs.Get(ctx, jobID); err != nil {
		return domain.Application{}, err
	}
	profile, err := s.Completion.Profiles.GetProfile(ctx, candidateID)
	if err != nil {
		return domain.Application{}, err
	}
	res, err := s.Completion.evaluate(ctx, profile)
	if err != nil {
		observability.RecordSubmission("error")
		return domain.Application{}, err
	}
	if !res.IsComplete {
		observability.RecordSubmission("incomplete")
		lg.Info("application refused: profile incomplete", slog.Any("missing", res.MissingFieldKeys))
		return domain.Application{}, &domain.IncompleteProfileError{Result: res}
	}

	exists, err := s.Apps.Exists(ctx, jobID, candidateID)
	if err != nil {
		observability.RecordSubmission("error")
		return domain.Application{}, err
	}
	if exists {
		observability.RecordSubmission("duplicate")
		return domain.Application{}, fmt.Errorf("%w: candidate already applied", domain.ErrConflict)
	}

	app := domain.Application{JobID: jobID, CandidateID: candidateID, AppliedAt: s.now()}
	id, err := s.Apps.Create(ctx, app)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			observability.RecordSubmission("duplicate")
		} else {
			observability.RecordSubmission("error")
		}
		return domain.Application{}, err
	}
	app.ID = id
	observability.RecordSubmission("accepted")
	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx, jobID); err != nil {
			lg.Warn("shortlist cache not invalidated", slog.Any("error", err))
		}
	}
	lg.Info("application submitted", slog.String("application_id", id))
	emit(ctx, s.Audit, domain.AuditEvent{
		Type:       domain.AuditApplicationSubmitted,
		JobID:      jobID,
		Actor:      candidateID,
		Attributes: map[string]string{"applicationId": id},
	})
	return app, nil
}

func (s ApplicationService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
