package usecase

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/fairyhunter13/shortlist-engine/internal/adapter/observability"
	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

// FieldSettingsService manages the administrator's visibility/requirement toggles.
type FieldSettingsService struct {
	Settings domain.FieldSettingRepository
	Audit    domain.AuditPublisher
}

func NewFieldSettingsService(r domain.FieldSettingRepository, a domain.AuditPublisher) FieldSettingsService {
	return FieldSettingsService{Settings: r, Audit: a}
}

func (s FieldSettingsService) List(ctx domain.Context) ([]domain.ProfileFieldSetting, error) {
	return s.Settings.List(ctx)
}

// BulkUpdate applies updates keyed by setting id and returns the stored list.
// Hidden fields are forced optional. Any unknown id rejects the whole batch.
func (s FieldSettingsService) BulkUpdate(ctx domain.Context, actor string, updates []domain.FieldSettingUpdate) ([]domain.ProfileFieldSetting, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no settings to update", domain.ErrInvalidArgument)
	}
	current, err := s.Settings.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.ProfileFieldSetting, len(current))
	for _, c := range current {
		byID[c.ID] = c
	}

	seen := make(map[string]bool, len(updates))
	changed := make([]domain.ProfileFieldSetting, 0, len(updates))
	forced := 0
	for _, u := range updates {
		if seen[u.ID] {
			return nil, fmt.Errorf("%w: setting %q listed twice", domain.ErrInvalidArgument, u.ID)
		}
		seen[u.ID] = true
		setting, ok := byID[u.ID]
		if !ok {
			return nil, fmt.Errorf("%w: field setting %q", domain.ErrNotFound, u.ID)
		}
		setting.Apply(u.IsVisible, u.IsRequired)
		if u.IsRequired && !setting.IsRequired {
			forced++
		}
		changed = append(changed, setting)
	}

	if err := s.Settings.BulkUpdate(ctx, changed); err != nil {
		return nil, err
	}
	if forced > 0 {
		observability.LoggerFromContext(ctx).Info("hidden fields forced optional", slog.Int("count", forced))
	}
	emit(ctx, s.Audit, domain.AuditEvent{
		Type:       domain.AuditFieldSettingsUpdated,
		Actor:      actor,
		Attributes: map[string]string{"updated": strconv.Itoa(len(changed))},
	})
	return s.Settings.List(ctx)
}

// SeedDefaults inserts seed settings that are not stored yet. A nil seed uses the catalog defaults.
func (s FieldSettingsService) SeedDefaults(ctx domain.Context, seed []domain.ProfileFieldSetting) (int, error) {
	if seed == nil {
		seed = domain.DefaultFieldSettings()
	}
	for i := range seed {
		if _, ok := domain.LookupField(seed[i].FieldName); !ok {
			return 0, fmt.Errorf("%w: unknown field %q in seed", domain.ErrInvalidArgument, seed[i].FieldName)
		}
		seed[i].Apply(seed[i].IsVisible, seed[i].IsRequired)
	}
	n, err := s.Settings.Seed(ctx, seed)
	if err != nil {
		return 0, err
	}
	slog.Info("field settings seeded", slog.Int("inserted", n), slog.Int("catalog", len(seed)))
	return n, nil
}
