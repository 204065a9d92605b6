package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

func sampleSheet() Sheet {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	rules := []domain.CriteriaRule{
		{ID: "r1", FieldKey: "yearsOfExperience", RuleType: domain.RuleThreshold, Weight: 1},
		{ID: "r2", FieldKey: "skills", RuleType: domain.RuleMatch, Weight: 1},
	}
	ranking := domain.Ranking{
		JobID:       "job-1",
		GeneratedAt: at,
		Entries: []domain.ShortlistEntry{
			{ApplicationID: "a2", CandidateID: "c2", AppliedAt: at, Rank: 1, ScoreBreakdown: domain.ScoreBreakdown{
				NormalizedScore: 100,
				PerRule:         []domain.RuleScore{{RuleID: "r1", RawScore: 1, Passed: true}, {RuleID: "r2", RawScore: 1, Passed: true}},
			}},
			{ApplicationID: "a1", CandidateID: "c1", AppliedAt: at, Rank: 2, ScoreBreakdown: domain.ScoreBreakdown{
				NormalizedScore: 25,
				PerRule:         []domain.RuleScore{{RuleID: "r1", RawScore: 0.5}},
			}},
		},
		Failures: []domain.ApplicationFailure{{ApplicationID: "a3", Reason: "profile snapshot unavailable"}},
	}
	profiles := map[string]domain.CandidateProfileSnapshot{
		"c1": {FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		"c2": {FirstName: "Grace", Email: "grace@example.com"},
	}
	return NewSheet(domain.JobPosting{ID: "job-1", Title: "Backend Engineer", Department: "Platform"}, rules, ranking, profiles)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatXLSX, "XLSX": FormatXLSX, " csv ": FormatCSV} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("pdf")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	assert.Equal(t, "shortlist-job-1.csv", FormatCSV.Filename("job-1"))
	assert.Contains(t, FormatXLSX.ContentType(), "spreadsheetml")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleSheet()))

	r := csv.NewReader(bytes.NewReader(buf.Bytes()))
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 5, "job, generated, header and two entries; failures are not exported")
	assert.Equal(t, []string{"Job", "Backend Engineer / Platform"}, recs[0])
	assert.Equal(t, "Rank", recs[2][0])
	assert.Equal(t, "yearsOfExperience THRESHOLD (r1)", recs[2][8])
	assert.Equal(t, []string{"1", "a2", "c2", "Grace", "grace@example.com", "2025-01-02T03:04:05Z", "100", "2", "1.0000", "1.0000"}, recs[3])
	assert.Equal(t, "Ada Lovelace", recs[4][3])
	assert.Equal(t, "", recs[4][9], "rule without a score stays blank")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sampleSheet()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	title, err := f.GetCellValue(shortlistSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Shortlist: Backend Engineer / Platform", title)

	rows, err := f.GetRows(shortlistSheet)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "Application ID", rows[3][1])
	assert.Equal(t, "a2", rows[4][1])
	assert.Equal(t, "100", rows[4][6])
	assert.Equal(t, "a1", rows[5][1])
}

func TestColumns_FallBackToBreakdown(t *testing.T) {
	s := sampleSheet()
	s.Rules = nil
	cols := s.columns()
	require.Len(t, cols, 2)
	assert.Equal(t, "r1", cols[0].ID)
	assert.Empty(t, Sheet{}.columns())
}

func TestBandColor(t *testing.T) {
	assert.Equal(t, "C6EFCE", bandColor(95))
	assert.Equal(t, "FFEB9C", bandColor(70))
	assert.Equal(t, "FFC7CE", bandColor(50))
	assert.Equal(t, "FF9999", bandColor(0))
}

func TestWriteCSV_NeutralizesFormulas(t *testing.T) {
	s := sampleSheet()
	s.Rows[0].Name = "=HYPERLINK(\"http://x\")"
	s.Rows[0].Email = "@sum(a1)"
	s.Rows[1].Name = "-1+2"

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, s))
	r := csv.NewReader(bytes.NewReader(buf.Bytes()))
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "'=HYPERLINK(\"http://x\")", recs[3][3])
	assert.Equal(t, "'@sum(a1)", recs[3][4])
	assert.Equal(t, "'-1+2", recs[4][3])
	assert.Equal(t, "ada@example.com", recs[4][4])
}

func TestWriteCSV_RulesWithoutIDs(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	rules := []domain.CriteriaRule{
		{FieldKey: "resume", RuleType: domain.RulePresence, Weight: 1},
		{FieldKey: "skills", RuleType: domain.RuleMatch, Weight: 2},
	}
	ranking := domain.Ranking{JobID: "job-1", GeneratedAt: at, Entries: []domain.ShortlistEntry{
		{ApplicationID: "a1", CandidateID: "c1", AppliedAt: at, Rank: 1, ScoreBreakdown: domain.ScoreBreakdown{
			NormalizedScore: 33,
			PerRule: []domain.RuleScore{
				{FieldKey: "resume", RuleType: domain.RulePresence, RawScore: 1, Passed: true},
				{FieldKey: "skills", RuleType: domain.RuleMatch, RawScore: 0},
			},
		}},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, NewSheet(domain.JobPosting{ID: "job-1"}, rules, ranking, nil)))
	r := csv.NewReader(bytes.NewReader(buf.Bytes()))
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"resume PRESENCE", "skills MATCH"}, recs[2][8:])
	assert.Equal(t, []string{"1.0000", "0.0000"}, recs[3][8:])
}
