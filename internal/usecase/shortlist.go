package usecase

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fairyhunter13/shortlist-engine/internal/adapter/export"
	"github.com/fairyhunter13/shortlist-engine/internal/adapter/observability"
	"github.com/fairyhunter13/shortlist-engine/internal/domain"
	"github.com/fairyhunter13/shortlist-engine/internal/engine"
)

// profileFetchLimit bounds concurrent snapshot reads per generation.
const profileFetchLimit = 8

// ShortlistService generates, caches and exports per-job rankings.
type ShortlistService struct {
	Criteria domain.CriteriaRepository
	Apps     domain.ApplicationRepository
	Profiles domain.ProfileProvider
	Jobs     domain.JobRepository
	Cache    domain.RankingCache
	Audit    domain.AuditPublisher
	Ranker   engine.Ranker
	CacheTTL time.Duration
}

func NewShortlistService(c domain.CriteriaRepository, apps domain.ApplicationRepository, p domain.ProfileProvider, j domain.JobRepository, cache domain.RankingCache, a domain.AuditPublisher, r engine.Ranker, ttl time.Duration) ShortlistService {
	return ShortlistService{Criteria: c, Apps: apps, Profiles: p, Jobs: j, Cache: cache, Audit: a, Ranker: r, CacheTTL: ttl}
}

// Generate ranks every application for jobID and refreshes the cache.
// Applications whose snapshot is missing land in Ranking.Failures.
func (s ShortlistService) Generate(ctx domain.Context, jobID string) (ranking domain.Ranking, err error) {
	if jobID == "" {
		return domain.Ranking{}, fmt.Errorf("%w: job id required", domain.ErrInvalidArgument)
	}
	var apps []domain.Application
	ctx, span := observability.StartGenerateSpan(ctx, jobID)
	defer func() { observability.EndGenerateSpan(span, len(apps), ranking, err) }()
	lg := observability.LoggerFromContext(ctx).With(slog.String("job_id", jobID))
	start := time.Now()

	set, err := s.Criteria.Get(ctx, jobID)
	if errors.Is(err, domain.ErrNotFound) {
		set, err = domain.CriteriaSet{JobID: jobID}, nil
	}
	if err != nil {
		return domain.Ranking{}, err
	}
	apps, err = s.Apps.ListByJob(ctx, jobID)
	if err != nil {
		return domain.Ranking{}, err
	}
	if err := s.attachProfiles(ctx, apps); err != nil {
		return domain.Ranking{}, err
	}

	ranking, err = s.Ranker.Rank(ctx, jobID, apps, set)
	observability.RecordShortlist(ranking, time.Since(start), err)
	if err != nil {
		return domain.Ranking{}, err
	}
	for _, f := range ranking.Failures {
		lg.Warn("application not scored", slog.String("application_id", f.ApplicationID), slog.String("reason", f.Reason))
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, ranking, s.CacheTTL); err != nil {
			lg.Warn("shortlist not cached", slog.Any("error", err))
		}
	}
	lg.Info("shortlist generated",
		slog.Int("entries", len(ranking.Entries)),
		slog.Int("failures", len(ranking.Failures)),
		slog.Bool("configured", set.IsConfigured()))
	emit(ctx, s.Audit, domain.AuditEvent{
		Type:  domain.AuditShortlistGenerated,
		JobID: jobID,
		Attributes: map[string]string{
			"entries":  strconv.Itoa(len(ranking.Entries)),
			"failures": strconv.Itoa(len(ranking.Failures)),
		},
	})
	return ranking, nil
}

func (s ShortlistService) attachProfiles(ctx domain.Context, apps []domain.Application) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(profileFetchLimit)
	for i := range apps {
		g.Go(func() error {
			p, err := s.Profiles.GetProfile(gctx, apps[i].CandidateID)
			switch {
			case errors.Is(err, domain.ErrNotFound):
				apps[i].Profile = nil
				return nil
			case err != nil:
				return fmt.Errorf("op=shortlist.load_profile %s: %w", apps[i].CandidateID, err)
			}
			apps[i].Profile = &p
			return nil
		})
	}
	return g.Wait()
}

// Get serves the cached ranking, generating it on a miss or a cache error.
func (s ShortlistService) Get(ctx domain.Context, jobID string) (domain.Ranking, error) {
	if jobID == "" {
		return domain.Ranking{}, fmt.Errorf("%w: job id required", domain.ErrInvalidArgument)
	}
	if s.Cache != nil {
		r, ok, err := s.Cache.Get(ctx, jobID)
		switch {
		case err != nil:
			observability.LoggerFromContext(ctx).Warn("shortlist cache unavailable", slog.String("job_id", jobID), slog.Any("error", err))
		case ok:
			return r, nil
		}
	}
	return s.Generate(ctx, jobID)
}

// Export writes the job's ranking in format f. Failures are never exported.
func (s ShortlistService) Export(ctx domain.Context, jobID string, f export.Format, w io.Writer) error {
	ranking, err := s.Get(ctx, jobID)
	if err != nil {
		return err
	}
	job, err := s.Jobs.Get(ctx, jobID)
	if errors.Is(err, domain.ErrNotFound) {
		job, err = domain.JobPosting{ID: jobID}, nil
	}
	if err != nil {
		return err
	}
	set, err := s.Criteria.Get(ctx, jobID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	profiles := make(map[string]domain.CandidateProfileSnapshot, len(ranking.Entries))
	for _, e := range ranking.Entries {
		p, err := s.Profiles.GetProfile(ctx, e.CandidateID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		profiles[e.CandidateID] = p
	}
	return export.Write(w, f, export.NewSheet(job, set.Rules, ranking, profiles))
}

// EntriesOnly is the end-user view of a ranking.
func EntriesOnly(r domain.Ranking) domain.Ranking {
	r.Failures = nil
	if r.Entries == nil {
		r.Entries = []domain.ShortlistEntry{}
	}
	return r
}
