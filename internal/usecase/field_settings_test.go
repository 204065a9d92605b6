package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
	"github.com/fairyhunter13/shortlist-engine/internal/domain/mocks"
	"github.com/fairyhunter13/shortlist-engine/internal/usecase"
)

func TestFieldSettings_BulkUpdate_ForcesHiddenOptional(t *testing.T) {
	repo := mocks.NewFieldSettingRepository(t)
	audit := mocks.NewAuditPublisher(t)
	stored := domain.DefaultFieldSettings()[:3]

	repo.On("List", mock.Anything).Return(stored, nil).Twice()
	repo.On("BulkUpdate", mock.Anything, mock.MatchedBy(func(s []domain.ProfileFieldSetting) bool {
		return len(s) == 2 &&
			s[0].ID == "pfs-email" && !s[0].IsVisible && !s[0].IsRequired &&
			s[1].ID == "pfs-lastName" && s[1].IsVisible && !s[1].IsRequired
	})).Return(nil).Once()
	audit.On("Publish", mock.Anything, mock.MatchedBy(func(ev domain.AuditEvent) bool {
		return ev.Type == domain.AuditFieldSettingsUpdated && ev.Actor == "admin" && ev.Attributes["updated"] == "2"
	})).Once()

	svc := usecase.NewFieldSettingsService(repo, audit)
	out, err := svc.BulkUpdate(context.Background(), "admin", []domain.FieldSettingUpdate{
		{ID: "pfs-email", IsVisible: false, IsRequired: true},
		{ID: "pfs-lastName", IsVisible: true, IsRequired: false},
	})
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

func TestFieldSettings_BulkUpdate_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		updates []domain.FieldSettingUpdate
		listed  bool
		want    error
	}{
		{"empty", nil, false, domain.ErrInvalidArgument},
		{"unknown_id", []domain.FieldSettingUpdate{{ID: "pfs-email"}, {ID: "pfs-shoeSize"}}, true, domain.ErrNotFound},
		{"duplicate_id", []domain.FieldSettingUpdate{{ID: "pfs-email"}, {ID: "pfs-email"}}, true, domain.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewFieldSettingRepository(t)
			if tt.listed {
				repo.On("List", mock.Anything).Return(domain.DefaultFieldSettings(), nil).Once()
			}
			svc := usecase.NewFieldSettingsService(repo, nil)
			_, err := svc.BulkUpdate(context.Background(), "admin", tt.updates)
			assert.ErrorIs(t, err, tt.want)
			repo.AssertNotCalled(t, "BulkUpdate", mock.Anything, mock.Anything)
		})
	}
}

func TestFieldSettings_SeedDefaults(t *testing.T) {
	repo := mocks.NewFieldSettingRepository(t)
	repo.On("Seed", mock.Anything, mock.MatchedBy(func(s []domain.ProfileFieldSetting) bool {
		return len(s) == len(domain.FieldCatalog())
	})).Return(4, nil).Once()

	n, err := usecase.NewFieldSettingsService(repo, nil).SeedDefaults(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestFieldSettings_SeedDefaults_RejectsUnknownField(t *testing.T) {
	repo := mocks.NewFieldSettingRepository(t)
	_, err := usecase.NewFieldSettingsService(repo, nil).SeedDefaults(context.Background(), []domain.ProfileFieldSetting{{FieldName: "shoeSize"}})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
