package domain

import (
	"context"
	"errors"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrRateLimited       = errors.New("rate limited")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrProfileIncomplete = errors.New("profile incomplete")
	ErrConfiguration     = errors.New("configuration error")
	ErrPartialBatch      = errors.New("partial batch failure")
	ErrInternal          = errors.New("internal error")
)

// FieldCategory groups catalog fields the way the profile editor does.
type FieldCategory string

const (
	CategoryBasic      FieldCategory = "basic"
	CategorySocial     FieldCategory = "social"
	CategorySkills     FieldCategory = "skills"
	CategoryEducation  FieldCategory = "education"
	CategoryExperience FieldCategory = "experience"
	CategoryResume     FieldCategory = "resume"
	CategoryCompliance FieldCategory = "compliance"
)

// DataType declares how a catalog field is read from a profile snapshot.
type DataType string

const (
	DataTypeText       DataType = "TEXT"
	DataTypeNumber     DataType = "NUMBER"
	DataTypeEnum       DataType = "ENUM"
	DataTypeList       DataType = "LIST"
	DataTypeDuration   DataType = "DURATION"
	DataTypeDocument   DataType = "DOCUMENT"
	DataTypeCompliance DataType = "COMPLIANCE"
)

// ProfileFieldSetting is the administrator's visibility/requirement toggle for one catalog field.
// Invariant: IsRequired implies IsVisible.
type ProfileFieldSetting struct {
	ID           string        `json:"id" yaml:"id"`
	FieldName    string        `json:"fieldName" yaml:"fieldName"`
	Category     FieldCategory `json:"category" yaml:"category"`
	Label        string        `json:"label" yaml:"label"`
	Description  string        `json:"description" yaml:"description"`
	IsVisible    bool          `json:"isVisible" yaml:"isVisible"`
	IsRequired   bool          `json:"isRequired" yaml:"isRequired"`
	DisplayOrder int           `json:"displayOrder" yaml:"displayOrder"`
}

// Apply sets visibility and requirement, forcing required off for hidden fields.
func (s *ProfileFieldSetting) Apply(visible, required bool) {
	s.IsVisible = visible
	s.IsRequired = required && visible
}

// Counts reports whether the setting participates in completion evaluation.
func (s ProfileFieldSetting) Counts() bool { return s.IsVisible && s.IsRequired }

// FieldSettingUpdate is one row of a bulk visibility/requirement update keyed by setting id.
type FieldSettingUpdate struct {
	ID         string `json:"id" validate:"required"`
	IsVisible  bool   `json:"isVisible"`
	IsRequired bool   `json:"isRequired"`
}

// ComplianceStatus of a clearance or compliance document.
type ComplianceStatus string

const (
	ComplianceValid   ComplianceStatus = "VALID"
	CompliancePending ComplianceStatus = "PENDING"
	ComplianceExpired ComplianceStatus = "EXPIRED"
)

type Skill struct {
	Name  string  `json:"name" yaml:"name"`
	Level string  `json:"level" yaml:"level"`
	Years float64 `json:"years" yaml:"years"`
}

type Education struct {
	Degree       string     `json:"degree" yaml:"degree"`
	Institution  string     `json:"institution" yaml:"institution"`
	FieldOfStudy string     `json:"fieldOfStudy,omitempty" yaml:"fieldOfStudy,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty" yaml:"endDate,omitempty"`
}

type Experience struct {
	Title     string     `json:"title" yaml:"title"`
	Company   string     `json:"company" yaml:"company"`
	StartDate time.Time  `json:"startDate" yaml:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	IsCurrent bool       `json:"isCurrent" yaml:"isCurrent"`
}

type ComplianceRecord struct {
	Type      string           `json:"type" yaml:"type"`
	Status    ComplianceStatus `json:"status" yaml:"status"`
	ExpiresAt *time.Time       `json:"expiresAt,omitempty" yaml:"expiresAt,omitempty"`
}

// CandidateProfileSnapshot is an immutable point-in-time read of a candidate profile.
// CapturedAt anchors "now" for current roles so scores stay re-computable.
type CandidateProfileSnapshot struct {
	CandidateID       string             `json:"candidateId" yaml:"candidateId"`
	FirstName         string             `json:"firstName" yaml:"firstName"`
	LastName          string             `json:"lastName" yaml:"lastName"`
	Email             string             `json:"email" yaml:"email"`
	Phone             string             `json:"phone" yaml:"phone"`
	Location          string             `json:"location" yaml:"location"`
	Headline          string             `json:"headline" yaml:"headline"`
	Summary           string             `json:"summary" yaml:"summary"`
	YearsOfExperience *float64           `json:"yearsOfExperience,omitempty" yaml:"yearsOfExperience,omitempty"`
	LinkedInURL       string             `json:"linkedinUrl" yaml:"linkedinUrl"`
	GitHubURL         string             `json:"githubUrl" yaml:"githubUrl"`
	PortfolioURL      string             `json:"portfolioUrl" yaml:"portfolioUrl"`
	Skills            []Skill            `json:"skills" yaml:"skills"`
	Education         []Education        `json:"education" yaml:"education"`
	Experience        []Experience       `json:"experience" yaml:"experience"`
	Compliance        []ComplianceRecord `json:"compliance" yaml:"compliance"`
	HasResume         bool               `json:"hasResume" yaml:"hasResume"`
	CapturedAt        time.Time          `json:"capturedAt" yaml:"capturedAt"`
}

// DisplayName joins first and last name for exports.
func (p CandidateProfileSnapshot) DisplayName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// EligibilityResult is the derived completion state of a profile against required fields.
type EligibilityResult struct {
	IsComplete           bool     `json:"isComplete"`
	CompletedCount       int      `json:"completedCount"`
	TotalRequired        int      `json:"totalRequired"`
	MissingFieldKeys     []string `json:"missingFieldKeys"`
	CompletionPercentage int      `json:"completionPercentage"`
}

// RuleType selects the scoring policy of a criteria rule.
type RuleType string

const (
	RulePresence  RuleType = "PRESENCE"
	RuleThreshold RuleType = "THRESHOLD"
	RuleMatch     RuleType = "MATCH"
	RuleRange     RuleType = "RANGE"
	RuleTenure    RuleType = "TENURE"
)

// RuleParameters holds the rule-type-specific knobs. Unused fields stay nil/empty.
type RuleParameters struct {
	MinValue      *float64 `json:"minValue,omitempty" yaml:"minValue,omitempty"`
	Min           *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max           *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	AllowedValues []string `json:"allowedValues,omitempty" yaml:"allowedValues,omitempty"`
	MinYears      *float64 `json:"minYears,omitempty" yaml:"minYears,omitempty"`
	Keywords      []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	PassThreshold *float64 `json:"passThreshold,omitempty" yaml:"passThreshold,omitempty"`
}

// CriteriaRule is one weighted shortlisting rule. Weight must be finite and positive.
type CriteriaRule struct {
	ID         string         `json:"id" yaml:"id"`
	FieldKey   string         `json:"fieldKey" yaml:"fieldKey"`
	RuleType   RuleType       `json:"ruleType" yaml:"ruleType"`
	Weight     float64        `json:"weight" yaml:"weight"`
	Parameters RuleParameters `json:"parameters" yaml:"parameters"`
}

// CriteriaSet is the per-job rule list. It is replaced wholesale on edit.
type CriteriaSet struct {
	JobID     string         `json:"jobId" yaml:"jobId"`
	Rules     []CriteriaRule `json:"rules" yaml:"rules"`
	UpdatedAt time.Time      `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// IsConfigured is derived: a set with no rules is "not configured".
func (c CriteriaSet) IsConfigured() bool { return len(c.Rules) > 0 }

// RuleScore is the transparent per-rule outcome of scoring one application.
type RuleScore struct {
	RuleID        string   `json:"ruleId"`
	FieldKey      string   `json:"fieldKey"`
	RuleType      RuleType `json:"ruleType"`
	RawScore      float64  `json:"rawScore"`
	WeightedScore float64  `json:"weightedScore"`
	Passed        bool     `json:"passed"`
}

type ScoreBreakdown struct {
	ApplicationID   string      `json:"applicationId"`
	PerRule         []RuleScore `json:"perRule"`
	TotalScore      float64     `json:"totalScore"`
	NormalizedScore int         `json:"normalizedScore"`
}

// PassedCount counts rules marked passed; used as the first tie-break.
func (b ScoreBreakdown) PassedCount() int {
	n := 0
	for _, r := range b.PerRule {
		if r.Passed {
			n++
		}
	}
	return n
}

// Application is one candidate's application to a job, with its scoring input attached.
type Application struct {
	ID          string                    `json:"applicationId"`
	JobID       string                    `json:"jobId"`
	CandidateID string                    `json:"candidateId"`
	AppliedAt   time.Time                 `json:"appliedAt"`
	Profile     *CandidateProfileSnapshot `json:"profile,omitempty"`
}

// ShortlistEntry is one ranked application. Rank is assigned by a sort pass only.
type ShortlistEntry struct {
	ApplicationID  string         `json:"applicationId"`
	CandidateID    string         `json:"candidateId"`
	AppliedAt      time.Time      `json:"appliedAt"`
	ScoreBreakdown ScoreBreakdown `json:"scoreBreakdown"`
	Rank           int            `json:"rank"`
}

// ApplicationFailure explains why an application was left out of a ranking.
type ApplicationFailure struct {
	ApplicationID string `json:"applicationId"`
	CandidateID   string `json:"candidateId"`
	Reason        string `json:"reason"`
}

// Ranking is the output of one rank pass over a job's applications.
type Ranking struct {
	JobID       string               `json:"jobId"`
	Entries     []ShortlistEntry     `json:"entries"`
	Failures    []ApplicationFailure `json:"failures,omitempty"`
	GeneratedAt time.Time            `json:"generatedAt"`
}

// PartialFailure returns a *PartialBatchFailure when any application was excluded.
func (r Ranking) PartialFailure() error {
	if len(r.Failures) == 0 {
		return nil
	}
	return &PartialBatchFailure{Failures: r.Failures}
}

// JobPosting carries the display fields exports need.
type JobPosting struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Department string `json:"department"`
}

// Context is an alias so ports can be declared without importing context everywhere.
type Context = context.Context
