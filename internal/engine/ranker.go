package engine

import (
	"cmp"
	"context"
	"errors"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

// Ranker scores every application of a job and orders the results.
type Ranker struct {
	Scorer Scorer
	// Workers bounds concurrent scoring; <=0 uses GOMAXPROCS.
	Workers int
}

// NewRanker wires a Ranker around the given scorer.
func NewRanker(s Scorer, workers int) Ranker {
	return Ranker{Scorer: s, Workers: workers}
}

type outcome struct {
	breakdown domain.ScoreBreakdown
	err       error
}

// Rank scores applications in parallel, then sorts once all scores are in.
// Applications that cannot be scored are listed in Ranking.Failures and left
// out of Entries; the only returned error is context cancellation.
//
// Order: normalizedScore desc, passed rule count desc, appliedAt asc, applicationId asc.
// Ranks run 1..N with no shared ranks.
func (r Ranker) Rank(ctx context.Context, jobID string, apps []domain.Application, set domain.CriteriaSet) (domain.Ranking, error) {
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]outcome, len(apps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range apps {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.scoreOne(apps[i], set)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Ranking{}, err
	}

	ranking := domain.Ranking{
		JobID:       jobID,
		Entries:     make([]domain.ShortlistEntry, 0, len(apps)),
		GeneratedAt: r.Scorer.now(),
	}
	for i, app := range apps {
		res := results[i]
		if res.err != nil {
			ranking.Failures = append(ranking.Failures, domain.ApplicationFailure{
				ApplicationID: app.ID,
				CandidateID:   app.CandidateID,
				Reason:        res.err.Error(),
			})
			continue
		}
		res.breakdown.ApplicationID = app.ID
		ranking.Entries = append(ranking.Entries, domain.ShortlistEntry{
			ApplicationID:  app.ID,
			CandidateID:    app.CandidateID,
			AppliedAt:      app.AppliedAt,
			ScoreBreakdown: res.breakdown,
		})
	}

	slices.SortStableFunc(ranking.Entries, compareEntries)
	for i := range ranking.Entries {
		ranking.Entries[i].Rank = i + 1
	}
	slices.SortStableFunc(ranking.Failures, func(a, b domain.ApplicationFailure) int {
		return cmp.Compare(a.ApplicationID, b.ApplicationID)
	})
	return ranking, nil
}

var errNoProfile = errors.New("profile snapshot unavailable")

func (r Ranker) scoreOne(app domain.Application, set domain.CriteriaSet) outcome {
	if app.Profile == nil {
		return outcome{err: errNoProfile}
	}
	b, err := r.Scorer.Score(*app.Profile, set)
	return outcome{breakdown: b, err: err}
}

func compareEntries(a, b domain.ShortlistEntry) int {
	if c := cmp.Compare(b.ScoreBreakdown.NormalizedScore, a.ScoreBreakdown.NormalizedScore); c != 0 {
		return c
	}
	if c := cmp.Compare(b.ScoreBreakdown.PassedCount(), a.ScoreBreakdown.PassedCount()); c != 0 {
		return c
	}
	if c := a.AppliedAt.Compare(b.AppliedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ApplicationID, b.ApplicationID)
}
