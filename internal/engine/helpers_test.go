package engine

import (
	"time"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

var refTime = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func f64(v float64) *float64 { return &v }

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func fixedScorer() Scorer {
	return Scorer{Now: func() time.Time { return refTime }}
}

func profileWithYears(id string, years float64) *domain.CandidateProfileSnapshot {
	return &domain.CandidateProfileSnapshot{
		CandidateID:       id,
		FirstName:         "Cand",
		LastName:          id,
		YearsOfExperience: f64(years),
		CapturedAt:        refTime,
	}
}
