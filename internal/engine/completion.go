package engine

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

// Evaluate computes how far a profile satisfies the visible, required settings.
// Current roles are measured up to the snapshot's capture time, or now when unset.
func Evaluate(profile domain.CandidateProfileSnapshot, settings []domain.ProfileFieldSetting) (domain.EligibilityResult, error) {
	return EvaluateAt(profile, settings, time.Now().UTC())
}

// EvaluateAt is Evaluate with an explicit fallback clock.
// Hidden settings never count, whatever their required flag says.
func EvaluateAt(profile domain.CandidateProfileSnapshot, settings []domain.ProfileFieldSetting, now time.Time) (domain.EligibilityResult, error) {
	var issues []domain.ValidationIssue
	seen := make(map[string]int, len(settings))
	for i, s := range settings {
		if _, ok := domain.LookupField(s.FieldName); !ok {
			issues = append(issues, domain.ValidationIssue{
				RuleIndex: i,
				RuleID:    s.ID,
				FieldKey:  s.FieldName,
				Code:      domain.IssueUnknownField,
				Message:   fmt.Sprintf("field %q is not in the catalog", s.FieldName),
			})
		}
		if first, dup := seen[s.FieldName]; dup {
			issues = append(issues, domain.ValidationIssue{
				RuleIndex: i,
				RuleID:    s.ID,
				FieldKey:  s.FieldName,
				Code:      domain.IssueDuplicateField,
				Message:   fmt.Sprintf("field %q already configured by setting #%d", s.FieldName, first),
			})
			continue
		}
		seen[s.FieldName] = i
	}
	if len(issues) > 0 {
		return domain.EligibilityResult{}, &domain.ValidationError{Issues: issues}
	}

	ordered := slices.Clone(settings)
	slices.SortStableFunc(ordered, func(a, b domain.ProfileFieldSetting) int {
		if c := cmp.Compare(a.DisplayOrder, b.DisplayOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.FieldName, b.FieldName)
	})

	asOf := referenceTime(&profile, now)
	res := domain.EligibilityResult{MissingFieldKeys: []string{}}
	for _, s := range ordered {
		if !s.Counts() {
			continue
		}
		res.TotalRequired++
		v, _ := resolve(s.FieldName, &profile, asOf)
		if v.present {
			res.CompletedCount++
			continue
		}
		res.MissingFieldKeys = append(res.MissingFieldKeys, s.FieldName)
	}

	res.IsComplete = res.CompletedCount == res.TotalRequired
	if res.TotalRequired == 0 {
		res.CompletionPercentage = 100
	} else {
		res.CompletionPercentage = int(math.Round(100 * float64(res.CompletedCount) / float64(res.TotalRequired)))
	}
	return res, nil
}
