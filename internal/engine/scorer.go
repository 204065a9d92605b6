package engine

import (
	"math"
	"time"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
	"github.com/fairyhunter13/shortlist-engine/pkg/textx"
)

const (
	// DefaultPartialPassThreshold is the pass mark of THRESHOLD, RANGE and TENURE
	// rules that set no passThreshold of their own.
	DefaultPartialPassThreshold = 0.6
	// BinaryPassThreshold is the pass mark of PRESENCE and MATCH rules.
	BinaryPassThreshold = 1.0
)

// ruleInput is what an evaluator sees for one rule.
type ruleInput struct {
	rule    domain.CriteriaRule
	value   fieldValue
	profile *domain.CandidateProfileSnapshot
	asOf    time.Time
}

type evaluator func(in ruleInput) float64

// evaluators dispatches scoring per rule type.
var evaluators = map[domain.RuleType]evaluator{
	domain.RulePresence:  scorePresence,
	domain.RuleThreshold: scoreThreshold,
	domain.RuleMatch:     scoreMatch,
	domain.RuleRange:     scoreRange,
	domain.RuleTenure:    scoreTenure,
}

var binaryRules = map[domain.RuleType]bool{
	domain.RulePresence: true,
	domain.RuleMatch:    true,
}

// Scorer evaluates one profile against a criteria set.
// The zero value is usable: wall clock and DefaultPartialPassThreshold.
type Scorer struct {
	// Now backs the reference time of snapshots without CapturedAt.
	Now func() time.Time
	// PartialPassThreshold overrides DefaultPartialPassThreshold when in (0,1].
	PartialPassThreshold float64
}

// NewScorer returns a Scorer with the given non-binary pass mark (0 keeps the default).
func NewScorer(partialPass float64) Scorer {
	return Scorer{PartialPassThreshold: partialPass}
}

func (s Scorer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s Scorer) passThreshold(r domain.CriteriaRule) float64 {
	if r.Parameters.PassThreshold != nil {
		return *r.Parameters.PassThreshold
	}
	if binaryRules[r.RuleType] {
		return BinaryPassThreshold
	}
	if s.PartialPassThreshold > 0 && s.PartialPassThreshold <= 1 {
		return s.PartialPassThreshold
	}
	return DefaultPartialPassThreshold
}

// Score returns the per-rule breakdown of profile against set.
// A rule that cannot be scored against its field yields a *domain.ConfigurationError
// naming that rule; missing profile data only scores zero.
func (s Scorer) Score(profile domain.CandidateProfileSnapshot, set domain.CriteriaSet) (domain.ScoreBreakdown, error) {
	out := domain.ScoreBreakdown{PerRule: make([]domain.RuleScore, 0, len(set.Rules))}
	if len(set.Rules) == 0 {
		return out, nil
	}
	asOf := referenceTime(&profile, s.now())

	var sumWeight float64
	for _, r := range set.Rules {
		if issues := checkRule(r); len(issues) > 0 {
			return domain.ScoreBreakdown{}, &domain.ConfigurationError{
				RuleID:   r.ID,
				FieldKey: r.FieldKey,
				RuleType: r.RuleType,
				Reason:   issues[0].Message,
			}
		}
		sumWeight += r.Weight
		if math.IsInf(sumWeight, 0) {
			return domain.ScoreBreakdown{}, &domain.ConfigurationError{
				RuleID: r.ID, FieldKey: r.FieldKey, RuleType: r.RuleType,
				Reason: "total weight overflows",
			}
		}
	}
	for _, r := range set.Rules {
		v, ok := resolve(r.FieldKey, &profile, asOf)
		if !ok {
			return domain.ScoreBreakdown{}, &domain.ConfigurationError{
				RuleID: r.ID, FieldKey: r.FieldKey, RuleType: r.RuleType,
				Reason: "field has no value reader",
			}
		}
		raw := clamp01(evaluators[r.RuleType](ruleInput{rule: r, value: v, profile: &profile, asOf: asOf}))
		out.PerRule = append(out.PerRule, domain.RuleScore{
			RuleID:        r.ID,
			FieldKey:      r.FieldKey,
			RuleType:      r.RuleType,
			RawScore:      raw,
			WeightedScore: raw * r.Weight,
			Passed:        raw >= s.passThreshold(r),
		})
		out.TotalScore += raw * r.Weight
	}
	// TotalScore <= sumWeight, both finite.
	out.NormalizedScore = int(math.Round(100 * clamp01(out.TotalScore/sumWeight)))
	return out, nil
}

func scorePresence(in ruleInput) float64 {
	if in.value.present {
		return 1
	}
	return 0
}

func scoreThreshold(in ruleInput) float64 {
	return thresholdScore(in.value.number, *in.rule.Parameters.MinValue)
}

// thresholdScore snaps to 1 at or above min and gives value/min partial credit below it.
func thresholdScore(value *float64, min float64) float64 {
	if value == nil || *value <= 0 {
		return 0
	}
	if *value >= min {
		return 1
	}
	return math.Min(*value/min, math.Nextafter(1, 0))
}

func scoreMatch(in ruleInput) float64 {
	allowed := make(map[string]struct{}, len(in.rule.Parameters.AllowedValues))
	for _, a := range in.rule.Parameters.AllowedValues {
		allowed[textx.NormalizeLabel(a)] = struct{}{}
	}
	for _, l := range in.value.labels {
		if _, ok := allowed[textx.NormalizeLabel(l)]; ok {
			return 1
		}
	}
	return 0
}

// scoreRange is 1 inside [min,max] and decays linearly to 0 one range width
// beyond the nearer bound. A zero-width range has no decay band.
func scoreRange(in ruleInput) float64 {
	v := in.value.number
	if v == nil {
		return 0
	}
	lo, hi := *in.rule.Parameters.Min, *in.rule.Parameters.Max
	if *v >= lo && *v <= hi {
		return 1
	}
	width := hi - lo
	if width == 0 {
		return 0
	}
	dist := lo - *v
	if *v > hi {
		dist = *v - hi
	}
	return math.Max(0, 1-dist/width)
}

func scoreTenure(in ruleInput) float64 {
	years := TenureYears(in.profile.Experience, in.rule.Parameters.Keywords, in.asOf)
	return thresholdScore(&years, *in.rule.Parameters.MinYears)
}

func clamp01(f float64) float64 {
	switch {
	case math.IsNaN(f) || f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
