package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/fairyhunter13/shortlist-engine/internal/adapter/observability"
	"github.com/fairyhunter13/shortlist-engine/internal/domain"
	"github.com/fairyhunter13/shortlist-engine/internal/engine"
)

// CriteriaService stores per-job shortlisting rules. Sets are replaced wholesale.
type CriteriaService struct {
	Criteria       domain.CriteriaRepository
	Cache          domain.RankingCache
	Audit          domain.AuditPublisher
	MaxImportBytes int
	Now            func() time.Time
}

func NewCriteriaService(r domain.CriteriaRepository, c domain.RankingCache, a domain.AuditPublisher, maxImportBytes int) CriteriaService {
	return CriteriaService{Criteria: r, Cache: c, Audit: a, MaxImportBytes: maxImportBytes, Now: time.Now}
}

// Get returns the stored set, or an empty unconfigured set for a job never configured.
func (s CriteriaService) Get(ctx domain.Context, jobID string) (domain.CriteriaSet, error) {
	if jobID == "" {
		return domain.CriteriaSet{}, fmt.Errorf("%w: job id required", domain.ErrInvalidArgument)
	}
	set, err := s.Criteria.Get(ctx, jobID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.CriteriaSet{JobID: jobID, Rules: []domain.CriteriaRule{}}, nil
	}
	if err != nil {
		return domain.CriteriaSet{}, err
	}
	if set.Rules == nil {
		set.Rules = []domain.CriteriaRule{}
	}
	return set, nil
}

// Validate is a dry run; nothing is stored.
func (s CriteriaService) Validate(rules []domain.CriteriaRule) []domain.ValidationIssue {
	issues := engine.Validate(rules)
	if issues == nil {
		issues = []domain.ValidationIssue{}
	}
	return issues
}

// Save validates and replaces the job's set. Rules without an id get a UUID.
// A *domain.ValidationError means nothing was persisted.
func (s CriteriaService) Save(ctx domain.Context, actor string, set domain.CriteriaSet) (domain.CriteriaSet, error) {
	lg := observability.LoggerFromContext(ctx).With(slog.String("job_id", set.JobID))
	if set.JobID == "" {
		return domain.CriteriaSet{}, fmt.Errorf("%w: job id required", domain.ErrInvalidArgument)
	}
	if err := engine.ValidateSet(set); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			observability.RecordValidationIssues(ve.Issues)
			lg.Warn("criteria rejected", slog.Int("issues", len(ve.Issues)), slog.String("first", ve.Issues[0].Code))
		}
		return domain.CriteriaSet{}, err
	}

	rules := make([]domain.CriteriaRule, len(set.Rules))
	copy(rules, set.Rules)
	for i := range rules {
		if rules[i].ID == "" {
			rules[i].ID = uuid.NewString()
		}
	}
	set.Rules = rules
	set.UpdatedAt = s.now()
	if err := s.Criteria.Replace(ctx, set); err != nil {
		return domain.CriteriaSet{}, err
	}
	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx, set.JobID); err != nil {
			lg.Warn("shortlist cache not invalidated", slog.Any("error", err))
		}
	}
	lg.Info("criteria saved", slog.Int("rules", len(rules)))
	emit(ctx, s.Audit, domain.AuditEvent{
		Type:       domain.AuditCriteriaSaved,
		JobID:      set.JobID,
		Actor:      actor,
		Attributes: map[string]string{"rules": strconv.Itoa(len(rules))},
	})
	return set, nil
}

// Import decodes a JSON or YAML document and saves it for jobID.
func (s CriteriaService) Import(ctx domain.Context, actor, jobID string, data []byte) (domain.CriteriaSet, error) {
	if s.MaxImportBytes > 0 && len(data) > s.MaxImportBytes {
		return domain.CriteriaSet{}, fmt.Errorf("%w: criteria document exceeds %d bytes", domain.ErrInvalidArgument, s.MaxImportBytes)
	}
	rules, err := DecodeCriteria(data)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			observability.RecordValidationIssues(ve.Issues)
		}
		return domain.CriteriaSet{}, err
	}
	return s.Save(ctx, actor, domain.CriteriaSet{JobID: jobID, Rules: rules})
}

func (s CriteriaService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}
