package engine

import (
	"slices"
	"time"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
	"github.com/fairyhunter13/shortlist-engine/pkg/textx"
)

type interval struct {
	start, end time.Time
}

// TenureYears returns the calendar time covered by experience entries matching
// keywords (any keyword in title or company; all entries when empty).
// Overlapping entries are merged, so concurrent roles never count twice.
// Current roles end at asOf; closed roles are clipped to asOf; entries with
// neither an end date nor the current flag are ignored.
func TenureYears(entries []domain.Experience, keywords []string, asOf time.Time) float64 {
	spans := make([]interval, 0, len(entries))
	for _, e := range entries {
		if !matchesKeywords(e, keywords) {
			continue
		}
		end := asOf
		if !e.IsCurrent {
			if e.EndDate == nil {
				continue
			}
			if e.EndDate.Before(asOf) {
				end = *e.EndDate
			}
		}
		if e.StartDate.IsZero() || !end.After(e.StartDate) {
			continue
		}
		spans = append(spans, interval{start: e.StartDate.UTC(), end: end.UTC()})
	}

	var months float64
	for _, s := range mergeIntervals(spans) {
		months += monthsBetween(s.start, s.end)
	}
	return months / 12
}

func matchesKeywords(e domain.Experience, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	for _, k := range keywords {
		if textx.ContainsFold(e.Title, k) || textx.ContainsFold(e.Company, k) {
			return true
		}
	}
	return false
}

func mergeIntervals(spans []interval) []interval {
	if len(spans) == 0 {
		return nil
	}
	slices.SortFunc(spans, func(a, b interval) int { return a.start.Compare(b.start) })
	out := []interval{spans[0]}
	for _, s := range spans[1:] {
		last := &out[len(out)-1]
		if !s.start.After(last.end) {
			if s.end.After(last.end) {
				last.end = s.end
			}
			continue
		}
		out = append(out, s)
	}
	return out
}

// monthsBetween counts whole calendar months from a to b plus the elapsed
// fraction of the following month.
func monthsBetween(a, b time.Time) float64 {
	m := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	anchor := a.AddDate(0, m, 0)
	for m > 0 && anchor.After(b) {
		m--
		anchor = a.AddDate(0, m, 0)
	}
	next := a.AddDate(0, m+1, 0)
	return float64(m) + float64(b.Sub(anchor))/float64(next.Sub(anchor))
}
