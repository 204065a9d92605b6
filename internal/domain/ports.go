package domain

import "time"

// Repositories (ports)

//go:generate mockery --name=FieldSettingRepository --filename=field_setting_repository_mock.go
//go:generate mockery --name=CriteriaRepository --filename=criteria_repository_mock.go
//go:generate mockery --name=ApplicationRepository --filename=application_repository_mock.go
//go:generate mockery --name=ProfileProvider --filename=profile_provider_mock.go
//go:generate mockery --name=RankingCache --filename=ranking_cache_mock.go
//go:generate mockery --name=JobRepository --filename=job_repository_mock.go
//go:generate mockery --name=AuditPublisher --filename=audit_publisher_mock.go

type FieldSettingRepository interface {
	List(ctx Context) ([]ProfileFieldSetting, error)
	// BulkUpdate writes isVisible/isRequired per id; unknown ids yield ErrNotFound.
	BulkUpdate(ctx Context, settings []ProfileFieldSetting) error
	// Seed inserts settings whose fieldName is not stored yet.
	Seed(ctx Context, settings []ProfileFieldSetting) (int, error)
}

type CriteriaRepository interface {
	// Get returns ErrNotFound when the job has never been configured.
	Get(ctx Context, jobID string) (CriteriaSet, error)
	Replace(ctx Context, set CriteriaSet) error
}

type ApplicationRepository interface {
	Create(ctx Context, app Application) (string, error)
	ListByJob(ctx Context, jobID string) ([]Application, error)
	Exists(ctx Context, jobID, candidateID string) (bool, error)
}

// ProfileProvider supplies read-only candidate snapshots.
type ProfileProvider interface {
	GetProfile(ctx Context, candidateID string) (CandidateProfileSnapshot, error)
}

type JobRepository interface {
	Get(ctx Context, jobID string) (JobPosting, error)
}

// RankingCache stores the latest ranking per job.
type RankingCache interface {
	Get(ctx Context, jobID string) (Ranking, bool, error)
	Set(ctx Context, r Ranking, ttl time.Duration) error
	Invalidate(ctx Context, jobID string) error
}

// Audit (port)

// AuditEvent kinds.
const (
	AuditFieldSettingsUpdated = "field_settings.updated"
	AuditCriteriaSaved        = "criteria.saved"
	AuditApplicationSubmitted = "application.submitted"
	AuditShortlistGenerated   = "shortlist.generated"
)

type AuditEvent struct {
	Type       string            `json:"type"`
	JobID      string            `json:"jobId,omitempty"`
	Actor      string            `json:"actor,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// AuditPublisher is fire-and-forget; callers never depend on delivery.
type AuditPublisher interface {
	Publish(ctx Context, ev AuditEvent)
}
