package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/shortlist-engine/internal/adapter/export"
	"github.com/fairyhunter13/shortlist-engine/internal/domain"
	"github.com/fairyhunter13/shortlist-engine/internal/engine"
	"github.com/fairyhunter13/shortlist-engine/internal/usecase"
)

type rankOptions struct {
	criteria     string
	applications string
	format       string
	out          string
	jobID        string
	partialPass  float64
	workers      int
}

func newRankCmd() *cobra.Command {
	var o rankOptions
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank applications against a criteria file",
		Long: "Scores every application in --applications against the rules in --criteria and writes the ranking " +
			"as JSON (with failures), CSV or XLSX.",
		RunE: func(cmd *cobra.Command, _ []string) error { return runRank(cmd, o) },
	}
	cmd.Flags().StringVarP(&o.criteria, "criteria", "c", "", "criteria file, JSON or YAML (required)")
	cmd.Flags().StringVarP(&o.applications, "applications", "a", "", "applications JSON file (required)")
	cmd.Flags().StringVarP(&o.format, "format", "f", "json", "output format: json, csv or xlsx")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "output path (default stdout)")
	cmd.Flags().StringVar(&o.jobID, "job", "", "job id (default: job.id from the applications file)")
	cmd.Flags().Float64Var(&o.partialPass, "partial-pass", engine.DefaultPartialPassThreshold, "pass threshold for non-binary rules")
	cmd.Flags().IntVar(&o.workers, "workers", 0, "parallel scorers (0 = GOMAXPROCS)")
	for _, f := range []string{"criteria", "applications"} {
		if err := cmd.MarkFlagRequired(f); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", f, err))
		}
	}
	return cmd
}

func runRank(cmd *cobra.Command, o rankOptions) error {
	if o.partialPass <= 0 || o.partialPass > 1 {
		return fmt.Errorf("--partial-pass must be in (0,1], got %v", o.partialPass)
	}
	raw, err := readInput(o.criteria)
	if err != nil {
		return err
	}
	rules, err := usecase.DecodeCriteria(raw)
	if err != nil {
		return reportIssues(cmd, err)
	}
	doc, err := loadApplications(o.applications)
	if err != nil {
		return err
	}
	job := doc.Job
	if o.jobID != "" {
		job.ID = o.jobID
	}
	if job.ID == "" {
		job.ID = "local"
	}
	set := domain.CriteriaSet{JobID: job.ID, Rules: rules}
	if err := engine.ValidateSet(set); err != nil {
		return reportIssues(cmd, err)
	}
	assignRuleIDs(rules)

	ranking, err := engine.NewRanker(engine.NewScorer(o.partialPass), o.workers).Rank(cmd.Context(), job.ID, doc.Applications, set)
	if err != nil {
		return err
	}
	for _, f := range ranking.Failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "not scored: %s (%s): %s\n", f.ApplicationID, f.CandidateID, f.Reason)
	}

	w, closeOut, err := openOutput(o.out, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if o.format == "json" {
		err = writeJSON(w, ranking)
	} else {
		err = writeSheet(w, o.format, job, rules, ranking, doc.Applications)
	}
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	return err
}

func writeSheet(w io.Writer, format string, job domain.JobPosting, rules []domain.CriteriaRule, r domain.Ranking, apps []domain.Application) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	profiles := make(map[string]domain.CandidateProfileSnapshot, len(apps))
	for _, a := range apps {
		if a.Profile != nil {
			profiles[a.CandidateID] = *a.Profile
		}
	}
	return export.Write(w, f, export.NewSheet(job, rules, r, profiles))
}

// assignRuleIDs names unnamed rules rule-<n> (1-based position), skipping ids already taken.
func assignRuleIDs(rules []domain.CriteriaRule) {
	taken := make(map[string]bool, len(rules))
	for _, r := range rules {
		taken[r.ID] = true
	}
	for i := range rules {
		if rules[i].ID != "" {
			continue
		}
		id := fmt.Sprintf("rule-%d", i+1)
		for n := 2; taken[id]; n++ {
			id = fmt.Sprintf("rule-%d-%d", i+1, n)
		}
		rules[i].ID = id
		taken[id] = true
	}
}

// reportIssues prints validation issues to stderr and returns a short error.
func reportIssues(cmd *cobra.Command, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		printIssues(cmd.ErrOrStderr(), ve.Issues)
		return fmt.Errorf("criteria invalid: %d issue(s)", len(ve.Issues))
	}
	return err
}
