package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// WriteCSV writes a two-line preamble (job, generated at), then the header and one row per entry.
func WriteCSV(w io.Writer, s Sheet) error {
	cw := csv.NewWriter(w)
	records := [][]string{
		{"Job", csvText(s.title())},
		{"Generated At", s.GeneratedAt.UTC().Format(time.RFC3339)},
		s.headers(),
	}
	for _, r := range s.Rows {
		e := r.Entry
		rec := []string{
			strconv.Itoa(e.Rank),
			csvText(e.ApplicationID),
			csvText(e.CandidateID),
			csvText(r.Name),
			csvText(r.Email),
			e.AppliedAt.UTC().Format(time.RFC3339),
			strconv.Itoa(e.ScoreBreakdown.NormalizedScore),
			strconv.Itoa(e.ScoreBreakdown.PassedCount()),
		}
		records = append(records, append(rec, s.rawScores(e)...))
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("op=export.csv: %w", err)
	}
	return nil
}

// csvText quotes cells a spreadsheet would otherwise evaluate as a formula.
func csvText(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}
