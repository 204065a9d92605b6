// Package export renders a ranking as a spreadsheet or CSV.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts xlsx or csv in any case; empty defaults to xlsx.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xlsx":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: unsupported export format %q", domain.ErrInvalidArgument, s)
	}
}

func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Filename builds the attachment name for a job's shortlist.
func (f Format) Filename(jobID string) string {
	return fmt.Sprintf("shortlist-%s.%s", jobID, f)
}

// Row is one ranked entry with the candidate display fields resolved.
type Row struct {
	Entry domain.ShortlistEntry
	Name  string
	Email string
}

// Sheet is everything a formatter needs. Failures are never rendered.
type Sheet struct {
	Job         domain.JobPosting
	Rules       []domain.CriteriaRule
	Rows        []Row
	GeneratedAt time.Time
}

// NewSheet joins ranking entries with the profiles keyed by candidate id.
func NewSheet(job domain.JobPosting, rules []domain.CriteriaRule, r domain.Ranking, profiles map[string]domain.CandidateProfileSnapshot) Sheet {
	rows := make([]Row, 0, len(r.Entries))
	for _, e := range r.Entries {
		p := profiles[e.CandidateID]
		rows = append(rows, Row{Entry: e, Name: p.DisplayName(), Email: p.Email})
	}
	return Sheet{Job: job, Rules: rules, Rows: rows, GeneratedAt: r.GeneratedAt}
}

var baseHeaders = []string{"Rank", "Application ID", "Candidate ID", "Name", "Email", "Applied At", "Score", "Passed Rules"}

func (s Sheet) headers() []string {
	h := append([]string(nil), baseHeaders...)
	for _, r := range s.columns() {
		if r.ID == "" {
			h = append(h, fmt.Sprintf("%s %s", r.FieldKey, r.RuleType))
			continue
		}
		h = append(h, fmt.Sprintf("%s %s (%s)", r.FieldKey, r.RuleType, r.ID))
	}
	return h
}

// columns falls back to the first entry's breakdown when no rules are supplied.
func (s Sheet) columns() []domain.CriteriaRule {
	if len(s.Rules) > 0 || len(s.Rows) == 0 {
		return s.Rules
	}
	var out []domain.CriteriaRule
	for _, rs := range s.Rows[0].Entry.ScoreBreakdown.PerRule {
		out = append(out, domain.CriteriaRule{ID: rs.RuleID, FieldKey: rs.FieldKey, RuleType: rs.RuleType})
	}
	return out
}

// rawScores lines per-rule raw scores up with columns(); absent rules are blank.
func (s Sheet) rawScores(e domain.ShortlistEntry) []string {
	byKey := make(map[string]float64, len(e.ScoreBreakdown.PerRule))
	for _, rs := range e.ScoreBreakdown.PerRule {
		byKey[columnKey(rs.RuleID, rs.FieldKey, rs.RuleType)] = rs.RawScore
	}
	cols := s.columns()
	out := make([]string, len(cols))
	for i, c := range cols {
		if v, ok := byKey[columnKey(c.ID, c.FieldKey, c.RuleType)]; ok {
			out[i] = strconv.FormatFloat(v, 'f', 4, 64)
		}
	}
	return out
}

// columnKey is the rule id, or the (fieldKey, ruleType) pair for rules saved without one.
// Validation keeps both unique within a set.
func columnKey(id, fieldKey string, ruleType domain.RuleType) string {
	if id != "" {
		return id
	}
	return fieldKey + "\x00" + string(ruleType)
}

func (s Sheet) title() string {
	t := s.Job.Title
	if t == "" {
		t = s.Job.ID
	}
	if s.Job.Department != "" {
		t += " / " + s.Job.Department
	}
	return t
}

// Write dispatches to the formatter for f.
func Write(w io.Writer, f Format, s Sheet) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, s)
	case FormatXLSX:
		return WriteXLSX(w, s)
	default:
		return fmt.Errorf("%w: unsupported export format %q", domain.ErrInvalidArgument, f)
	}
}
