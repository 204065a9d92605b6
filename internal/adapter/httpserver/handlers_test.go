package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/shortlist-engine/internal/adapter/httpserver"
	"github.com/fairyhunter13/shortlist-engine/internal/config"
	"github.com/fairyhunter13/shortlist-engine/internal/domain"
	"github.com/fairyhunter13/shortlist-engine/internal/domain/mocks"
	"github.com/fairyhunter13/shortlist-engine/internal/engine"
	"github.com/fairyhunter13/shortlist-engine/internal/usecase"
)

var fixedNow = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func f64(v float64) *float64 { return &v }

type harness struct {
	settings *mocks.FieldSettingRepository
	criteria *mocks.CriteriaRepository
	apps     *mocks.ApplicationRepository
	profiles *mocks.ProfileProvider
	jobs     *mocks.JobRepository
	cache    *mocks.RankingCache
	audit    *mocks.AuditPublisher
	srv      *httpserver.Server
	router   http.Handler
}

func newHarness(t *testing.T) *harness {
	h := &harness{
		settings: mocks.NewFieldSettingRepository(t),
		criteria: mocks.NewCriteriaRepository(t),
		apps:     mocks.NewApplicationRepository(t),
		profiles: mocks.NewProfileProvider(t),
		jobs:     mocks.NewJobRepository(t),
		cache:    mocks.NewRankingCache(t),
		audit:    mocks.NewAuditPublisher(t),
	}
	completion := usecase.NewCompletionService(h.settings, h.profiles)
	apps := usecase.NewApplicationService(completion, h.apps, h.jobs, h.cache, h.audit)
	apps.Now = func() time.Time { return fixedNow }
	criteria := usecase.NewCriteriaService(h.criteria, h.cache, h.audit, 512)
	criteria.Now = func() time.Time { return fixedNow }
	scorer := engine.NewScorer(engine.DefaultPartialPassThreshold)
	scorer.Now = func() time.Time { return fixedNow }
	shortlist := usecase.NewShortlistService(h.criteria, h.apps, h.profiles, h.jobs, h.cache, h.audit, engine.NewRanker(scorer, 2), time.Minute)

	h.srv = httpserver.NewServer(config.Config{}, usecase.NewFieldSettingsService(h.settings, h.audit), completion, apps, criteria, shortlist)
	h.router = routes(h.srv)
	return h
}

// routes mirrors the production route table without the outer middleware.
func routes(s *httpserver.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(httpserver.RequestID())
	r.Get("/v1/field-settings", s.ListFieldSettingsHandler())
	r.Put("/v1/field-settings", s.UpdateFieldSettingsHandler())
	r.Get("/v1/candidates/{candidateID}/completion", s.CompletionHandler())
	r.Post("/v1/jobs/{jobID}/applications", s.SubmitApplicationHandler())
	r.Get("/v1/jobs/{jobID}/criteria", s.GetCriteriaHandler())
	r.Put("/v1/jobs/{jobID}/criteria", s.PutCriteriaHandler())
	r.Post("/v1/criteria/validate", s.ValidateCriteriaHandler())
	r.Post("/v1/jobs/{jobID}/criteria/import", s.ImportCriteriaHandler())
	r.Post("/v1/jobs/{jobID}/shortlist", s.GenerateShortlistHandler())
	r.Get("/v1/jobs/{jobID}/shortlist", s.GetShortlistHandler())
	r.Get("/v1/jobs/{jobID}/shortlist/export", s.ExportShortlistHandler())
	r.Get("/readyz", s.ReadyzHandler())
	return r
}

func (h *harness) do(method, path, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, r)
	return rec
}

func errCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Error.Code
}

func settingsRequiring(keys ...string) []domain.ProfileFieldSetting {
	out := domain.DefaultFieldSettings()
	req := map[string]bool{}
	for _, k := range keys {
		req[k] = true
	}
	for i := range out {
		out[i].Apply(true, req[out[i].FieldName])
	}
	return out
}

func TestFieldSettings_List(t *testing.T) {
	h := newHarness(t)
	h.settings.On("List", mock.Anything).Return(domain.DefaultFieldSettings(), nil).Once()

	rec := h.do(http.MethodGet, "/v1/field-settings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Settings []domain.ProfileFieldSetting `json:"settings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Settings, len(domain.FieldCatalog()))
}

func TestFieldSettings_Update(t *testing.T) {
	h := newHarness(t)
	stored := domain.DefaultFieldSettings()
	h.settings.On("List", mock.Anything).Return(stored, nil).Twice()
	h.settings.On("BulkUpdate", mock.Anything, mock.MatchedBy(func(s []domain.ProfileFieldSetting) bool {
		return len(s) == 1 && s[0].ID == "pfs-phone" && !s[0].IsVisible && !s[0].IsRequired
	})).Return(nil).Once()
	h.audit.On("Publish", mock.Anything, mock.MatchedBy(func(ev domain.AuditEvent) bool {
		return ev.Type == domain.AuditFieldSettingsUpdated && ev.Actor == "anonymous"
	})).Once()

	rec := h.do(http.MethodPut, "/v1/field-settings", `{"settings":[{"id":"pfs-phone","isVisible":false,"isRequired":true}]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFieldSettings_UpdateRejectsBadBodies(t *testing.T) {
	h := newHarness(t)
	for _, body := range []string{``, `{"settings":[]}`, `{"settings":[{"isVisible":true}]}`, `{"bogus":1}`, `not json`} {
		rec := h.do(http.MethodPut, "/v1/field-settings", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "INVALID_ARGUMENT", errCode(t, rec), body)
	}
}

func TestFieldSettings_UpdateUnknownID(t *testing.T) {
	h := newHarness(t)
	h.settings.On("List", mock.Anything).Return(domain.DefaultFieldSettings(), nil).Once()

	rec := h.do(http.MethodPut, "/v1/field-settings", `{"settings":[{"id":"pfs-shoeSize","isVisible":true}]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompletion(t *testing.T) {
	h := newHarness(t)
	h.profiles.On("GetProfile", mock.Anything, "c1").Return(domain.CandidateProfileSnapshot{CandidateID: "c1", HasResume: true}, nil).Once()
	h.settings.On("List", mock.Anything).Return(settingsRequiring("resume", "skills"), nil).Once()

	rec := h.do(http.MethodGet, "/v1/candidates/c1/completion", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var res domain.EligibilityResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, domain.EligibilityResult{CompletedCount: 1, TotalRequired: 2, MissingFieldKeys: []string{"skills"}, CompletionPercentage: 50}, res)
}

func TestCompletion_BadCandidateID(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/v1/candidates/bad%20id/completion", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitApplication(t *testing.T) {
	h := newHarness(t)
	h.jobs.On("Get", mock.Anything, "job-1").Return(domain.JobPosting{ID: "job-1"}, nil).Twice()
	h.settings.On("List", mock.Anything).Return(settingsRequiring("firstName", "skills"), nil).Twice()

	t.Run("incomplete", func(t *testing.T) {
		h.profiles.On("GetProfile", mock.Anything, "c1").Return(domain.CandidateProfileSnapshot{CandidateID: "c1", FirstName: "Ada"}, nil).Once()
		rec := h.do(http.MethodPost, "/v1/jobs/job-1/applications", `{"candidateId":"c1"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "PROFILE_INCOMPLETE", errCode(t, rec))
		assert.Contains(t, rec.Body.String(), `"missingFieldKeys":["skills"]`)
	})

	t.Run("accepted", func(t *testing.T) {
		h.profiles.On("GetProfile", mock.Anything, "c2").Return(domain.CandidateProfileSnapshot{
			CandidateID: "c2", FirstName: "Grace", Skills: []domain.Skill{{Name: "Go"}},
		}, nil).Once()
		h.apps.On("Exists", mock.Anything, "job-1", "c2").Return(false, nil).Once()
		h.apps.On("Create", mock.Anything, mock.Anything).Return("app-9", nil).Once()
		h.cache.On("Invalidate", mock.Anything, "job-1").Return(nil).Once()
		h.audit.On("Publish", mock.Anything, mock.Anything).Once()

		rec := h.do(http.MethodPost, "/v1/jobs/job-1/applications", `{"candidateId":"c2"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		var app domain.Application
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &app))
		assert.Equal(t, "app-9", app.ID)
		assert.True(t, app.AppliedAt.Equal(fixedNow))
	})
}

func TestSubmitApplication_MissingCandidate(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodPost, "/v1/jobs/job-1/applications", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCriteria_GetUnconfigured(t *testing.T) {
	h := newHarness(t)
	h.criteria.On("Get", mock.Anything, "job-1").Return(domain.CriteriaSet{}, domain.ErrNotFound).Once()

	rec := h.do(http.MethodGet, "/v1/jobs/job-1/criteria", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"jobId":"job-1","rules":[],"updatedAt":"0001-01-01T00:00:00Z"}`, rec.Body.String())
}

func TestCriteria_Put(t *testing.T) {
	h := newHarness(t)
	h.criteria.On("Replace", mock.Anything, mock.MatchedBy(func(s domain.CriteriaSet) bool {
		return s.JobID == "job-1" && len(s.Rules) == 1 && s.Rules[0].ID != ""
	})).Return(nil).Once()
	h.cache.On("Invalidate", mock.Anything, "job-1").Return(nil).Once()
	h.audit.On("Publish", mock.Anything, mock.Anything).Once()

	rec := h.do(http.MethodPut, "/v1/jobs/job-1/criteria",
		`{"rules":[{"fieldKey":"yearsOfExperience","ruleType":"THRESHOLD","weight":10,"parameters":{"minValue":5}}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var set domain.CriteriaSet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &set))
	assert.True(t, set.UpdatedAt.Equal(fixedNow))
}

func TestCriteria_PutInvalidPersistsNothing(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodPut, "/v1/jobs/job-1/criteria",
		`{"rules":[{"fieldKey":"shoeSize","ruleType":"PRESENCE","weight":1}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), domain.IssueUnknownField)
}

func TestCriteria_PutJobMismatch(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodPut, "/v1/jobs/job-1/criteria", `{"jobId":"job-2","rules":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCriteria_Validate(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodPost, "/v1/criteria/validate",
		`{"rules":[{"fieldKey":"email","ruleType":"THRESHOLD","weight":1,"parameters":{"minValue":1}},{"fieldKey":"skills","ruleType":"PRESENCE","weight":0}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Valid  bool                     `json:"valid"`
		Issues []domain.ValidationIssue `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Valid)
	codes := map[string]int{}
	for _, i := range body.Issues {
		codes[i.Code] = i.RuleIndex
	}
	assert.Equal(t, 0, codes[domain.IssueIncompatibleRule])
	assert.Equal(t, 1, codes[domain.IssueInvalidWeight])
}

func TestCriteria_ImportYAML(t *testing.T) {
	h := newHarness(t)
	h.criteria.On("Replace", mock.Anything, mock.MatchedBy(func(s domain.CriteriaSet) bool {
		return s.JobID == "job-1" && len(s.Rules) == 1 && s.Rules[0].RuleType == domain.RulePresence
	})).Return(nil).Once()
	h.cache.On("Invalidate", mock.Anything, "job-1").Return(nil).Once()
	h.audit.On("Publish", mock.Anything, mock.Anything).Once()

	rec := h.do(http.MethodPost, "/v1/jobs/job-1/criteria/import", "- fieldKey: resume\n  ruleType: PRESENCE\n  weight: 2\n")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestCriteria_ImportTooLarge(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodPost, "/v1/jobs/job-1/criteria/import", "["+strings.Repeat(" ", 600)+"]")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = h.do(http.MethodPost, "/v1/jobs/job-1/criteria/import", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func stubRanking(h *harness) {
	h.criteria.On("Get", mock.Anything, "job-1").Return(domain.CriteriaSet{JobID: "job-1", Rules: []domain.CriteriaRule{
		{ID: "r1", FieldKey: "yearsOfExperience", RuleType: domain.RuleThreshold, Weight: 1, Parameters: domain.RuleParameters{MinValue: f64(5)}},
	}}, nil)
	h.apps.On("ListByJob", mock.Anything, "job-1").Return([]domain.Application{
		{ID: "a1", JobID: "job-1", CandidateID: "c1", AppliedAt: fixedNow.Add(-time.Hour)},
		{ID: "a2", JobID: "job-1", CandidateID: "gone", AppliedAt: fixedNow.Add(-time.Hour)},
	}, nil)
	h.profiles.On("GetProfile", mock.Anything, "c1").Return(domain.CandidateProfileSnapshot{CandidateID: "c1", FirstName: "Ada", YearsOfExperience: f64(5)}, nil)
	h.profiles.On("GetProfile", mock.Anything, "gone").Return(domain.CandidateProfileSnapshot{}, domain.ErrNotFound)
	h.cache.On("Set", mock.Anything, mock.Anything, time.Minute).Return(nil)
	h.audit.On("Publish", mock.Anything, mock.Anything)
}

func TestShortlist_GenerateIncludesFailures(t *testing.T) {
	h := newHarness(t)
	stubRanking(h)

	rec := h.do(http.MethodPost, "/v1/jobs/job-1/shortlist", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Shortlist-Failures"))
	var r domain.Ranking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	require.Len(t, r.Entries, 1)
	assert.Equal(t, 1, r.Entries[0].Rank)
	assert.Equal(t, 100, r.Entries[0].ScoreBreakdown.NormalizedScore)
	require.Len(t, r.Failures, 1)
	assert.Equal(t, "a2", r.Failures[0].ApplicationID)
}

func TestShortlist_GetServesCacheWithoutFailures(t *testing.T) {
	h := newHarness(t)
	cached := domain.Ranking{
		JobID:    "job-1",
		Entries:  []domain.ShortlistEntry{{ApplicationID: "a1", CandidateID: "c1", Rank: 1}},
		Failures: []domain.ApplicationFailure{{ApplicationID: "a2", Reason: "profile not found"}},
	}
	h.cache.On("Get", mock.Anything, "job-1").Return(cached, true, nil).Once()

	rec := h.do(http.MethodGet, "/v1/jobs/job-1/shortlist", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "failures")
	assert.Contains(t, rec.Body.String(), `"applicationId":"a1"`)
}

func TestShortlist_ExportCSV(t *testing.T) {
	h := newHarness(t)
	h.cache.On("Get", mock.Anything, "job-1").Return(domain.Ranking{}, false, nil).Once()
	h.jobs.On("Get", mock.Anything, "job-1").Return(domain.JobPosting{ID: "job-1", Title: "Backend Engineer"}, nil).Once()
	stubRanking(h)

	rec := h.do(http.MethodGet, "/v1/jobs/job-1/shortlist/export?format=csv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "shortlist-job-1.csv")
	assert.Contains(t, rec.Body.String(), "Backend Engineer")
	assert.Contains(t, rec.Body.String(), "Ada")
	assert.NotContains(t, rec.Body.String(), "gone")
}

func TestShortlist_ExportUnknownFormat(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/v1/jobs/job-1/shortlist/export?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReadyz(t *testing.T) {
	h := newHarness(t)
	h.srv.Checks = []httpserver.ReadinessCheck{
		{Name: "db", Check: func(context.Context) error { return nil }},
		{Name: "redis", Check: func(context.Context) error { return errors.New("dial tcp: refused") }},
	}
	rec := h.do(http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "refused")

	h.srv.Checks = h.srv.Checks[:1]
	rec = h.do(http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
