package usecase

import (
	"fmt"

	"github.com/fairyhunter13/shortlist-engine/internal/adapter/observability"
	"github.com/fairyhunter13/shortlist-engine/internal/domain"
	"github.com/fairyhunter13/shortlist-engine/internal/engine"
)

// CompletionService reports how far a candidate's profile is from the required fields.
type CompletionService struct {
	Settings domain.FieldSettingRepository
	Profiles domain.ProfileProvider
}

func NewCompletionService(r domain.FieldSettingRepository, p domain.ProfileProvider) CompletionService {
	return CompletionService{Settings: r, Profiles: p}
}

func (s CompletionService) Evaluate(ctx domain.Context, candidateID string) (domain.EligibilityResult, error) {
	if candidateID == "" {
		return domain.EligibilityResult{}, fmt.Errorf("%w: candidate id required", domain.ErrInvalidArgument)
	}
	profile, err := s.Profiles.GetProfile(ctx, candidateID)
	if err != nil {
		return domain.EligibilityResult{}, err
	}
	return s.evaluate(ctx, profile)
}

func (s CompletionService) evaluate(ctx domain.Context, profile domain.CandidateProfileSnapshot) (domain.EligibilityResult, error) {
	settings, err := s.Settings.List(ctx)
	if err != nil {
		return domain.EligibilityResult{}, err
	}
	res, err := engine.Evaluate(profile, settings)
	if err != nil {
		// stored settings name a field the catalog no longer has
		return domain.EligibilityResult{}, fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}
	observability.ObserveCompletion(res)
	return res, nil
}
