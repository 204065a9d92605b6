// Package engine holds the eligibility and shortlisting core: field value
// resolution, profile completion, criteria validation, scoring and ranking.
// Every function here is pure over its inputs; I/O belongs to the callers.
package engine

import (
	"time"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
	"github.com/fairyhunter13/shortlist-engine/pkg/textx"
)

// fieldValue is the typed read of one catalog field from a snapshot.
// number is nil when the field has no numeric reading.
type fieldValue struct {
	present bool
	number  *float64
	labels  []string
}

type extractor func(p *domain.CandidateProfileSnapshot, asOf time.Time) fieldValue

// extractors is keyed by catalog key; every catalog entry must have one.
var extractors = map[string]extractor{
	"firstName":    textField(func(p *domain.CandidateProfileSnapshot) string { return p.FirstName }),
	"lastName":     textField(func(p *domain.CandidateProfileSnapshot) string { return p.LastName }),
	"email":        textField(func(p *domain.CandidateProfileSnapshot) string { return p.Email }),
	"phone":        textField(func(p *domain.CandidateProfileSnapshot) string { return p.Phone }),
	"location":     textField(func(p *domain.CandidateProfileSnapshot) string { return p.Location }),
	"headline":     textField(func(p *domain.CandidateProfileSnapshot) string { return p.Headline }),
	"summary":      textField(func(p *domain.CandidateProfileSnapshot) string { return p.Summary }),
	"linkedinUrl":  textField(func(p *domain.CandidateProfileSnapshot) string { return p.LinkedInURL }),
	"githubUrl":    textField(func(p *domain.CandidateProfileSnapshot) string { return p.GitHubURL }),
	"portfolioUrl": textField(func(p *domain.CandidateProfileSnapshot) string { return p.PortfolioURL }),

	"yearsOfExperience": func(p *domain.CandidateProfileSnapshot, _ time.Time) fieldValue {
		return numberValue(p.YearsOfExperience)
	},
	"skillYears": func(p *domain.CandidateProfileSnapshot, _ time.Time) fieldValue {
		if len(p.Skills) == 0 {
			return fieldValue{}
		}
		best := p.Skills[0].Years
		for _, s := range p.Skills[1:] {
			if s.Years > best {
				best = s.Years
			}
		}
		return numberValue(&best)
	},

	"skills": func(p *domain.CandidateProfileSnapshot, _ time.Time) fieldValue {
		labels := make([]string, 0, len(p.Skills))
		for _, s := range p.Skills {
			labels = append(labels, s.Name)
		}
		return listValue(len(p.Skills), labels)
	},
	"education": func(p *domain.CandidateProfileSnapshot, _ time.Time) fieldValue {
		labels := make([]string, 0, len(p.Education))
		for _, e := range p.Education {
			labels = append(labels, e.Degree)
		}
		return listValue(len(p.Education), labels)
	},
	"experience": func(p *domain.CandidateProfileSnapshot, _ time.Time) fieldValue {
		labels := make([]string, 0, len(p.Experience))
		for _, e := range p.Experience {
			labels = append(labels, e.Title)
		}
		return listValue(len(p.Experience), labels)
	},
	"compliance": func(p *domain.CandidateProfileSnapshot, _ time.Time) fieldValue {
		labels := activeComplianceTypes(p.Compliance)
		return listValue(len(labels), labels)
	},

	"skillLevel": enumField(func(p *domain.CandidateProfileSnapshot) []string {
		out := make([]string, 0, len(p.Skills))
		for _, s := range p.Skills {
			out = append(out, s.Level)
		}
		return out
	}),
	"educationDegree": enumField(func(p *domain.CandidateProfileSnapshot) []string {
		out := make([]string, 0, len(p.Education))
		for _, e := range p.Education {
			out = append(out, e.Degree)
		}
		return out
	}),
	"educationInstitution": enumField(func(p *domain.CandidateProfileSnapshot) []string {
		out := make([]string, 0, len(p.Education))
		for _, e := range p.Education {
			out = append(out, e.Institution)
		}
		return out
	}),
	"experienceTitle": enumField(func(p *domain.CandidateProfileSnapshot) []string {
		out := make([]string, 0, len(p.Experience))
		for _, e := range p.Experience {
			out = append(out, e.Title)
		}
		return out
	}),
	"complianceType": enumField(func(p *domain.CandidateProfileSnapshot) []string {
		return activeComplianceTypes(p.Compliance)
	}),

	"experienceTenure": func(p *domain.CandidateProfileSnapshot, asOf time.Time) fieldValue {
		years := TenureYears(p.Experience, nil, asOf)
		return fieldValue{present: years > 0, number: &years}
	},

	"resume": func(p *domain.CandidateProfileSnapshot, _ time.Time) fieldValue {
		return fieldValue{present: p.HasResume}
	},
}

func textField(get func(*domain.CandidateProfileSnapshot) string) extractor {
	return func(p *domain.CandidateProfileSnapshot, _ time.Time) fieldValue {
		return fieldValue{present: !textx.IsBlank(get(p))}
	}
}

func enumField(get func(*domain.CandidateProfileSnapshot) []string) extractor {
	return func(p *domain.CandidateProfileSnapshot, _ time.Time) fieldValue {
		labels := nonBlank(get(p))
		return fieldValue{present: len(labels) > 0, labels: labels}
	}
}

func numberValue(v *float64) fieldValue {
	if v == nil {
		return fieldValue{}
	}
	n := *v
	return fieldValue{present: true, number: &n}
}

// listValue uses the entry count as the numeric reading so THRESHOLD/RANGE work on lists.
func listValue(count int, labels []string) fieldValue {
	n := float64(count)
	return fieldValue{present: count > 0, number: &n, labels: nonBlank(labels)}
}

func activeComplianceTypes(records []domain.ComplianceRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		if r.Status == domain.ComplianceExpired {
			continue
		}
		out = append(out, r.Type)
	}
	return out
}

func nonBlank(in []string) []string {
	out := in[:0:0]
	for _, s := range in {
		if !textx.IsBlank(s) {
			out = append(out, s)
		}
	}
	return out
}

// resolve reads a catalog field from a snapshot. ok is false for keys with no extractor.
func resolve(key string, p *domain.CandidateProfileSnapshot, asOf time.Time) (fieldValue, bool) {
	fn, ok := extractors[key]
	if !ok {
		return fieldValue{}, false
	}
	return fn(p, asOf), true
}

// referenceTime is the snapshot's capture time, or fallback when it was never stamped.
func referenceTime(p *domain.CandidateProfileSnapshot, fallback time.Time) time.Time {
	if !p.CapturedAt.IsZero() {
		return p.CapturedAt
	}
	return fallback
}
