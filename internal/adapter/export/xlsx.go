package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

const shortlistSheet = "Shortlist"

var border = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// score bands share colours with the review dashboard
func bandColor(score int) string {
	switch {
	case score >= 90:
		return "C6EFCE"
	case score >= 70:
		return "FFEB9C"
	case score >= 50:
		return "FFC7CE"
	default:
		return "FF9999"
	}
}

// WriteXLSX renders a single sheet: title row, generated-at row, header row at 4, entries below.
func WriteXLSX(w io.Writer, s Sheet) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", shortlistSheet); err != nil {
		return fmt.Errorf("op=export.xlsx: %w", err)
	}
	if err := fillShortlist(f, s); err != nil {
		return fmt.Errorf("op=export.xlsx: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("op=export.xlsx.write: %w", err)
	}
	return nil
}

func fillShortlist(f *excelize.File, s Sheet) error {
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return err
	}
	bands := map[string]int{}
	for _, c := range []string{"C6EFCE", "FFEB9C", "FFC7CE", "FF9999"} {
		id, err := f.NewStyle(&excelize.Style{Fill: excelize.Fill{Type: "pattern", Color: []string{c}, Pattern: 1}, Border: border})
		if err != nil {
			return err
		}
		bands[c] = id
	}

	headers := s.headers()
	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}

	if err := f.SetCellValue(shortlistSheet, "A1", "Shortlist: "+s.title()); err != nil {
		return err
	}
	if err := f.MergeCell(shortlistSheet, "A1", last+"1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(shortlistSheet, "A1", last+"1", titleStyle); err != nil {
		return err
	}
	if err := f.SetCellValue(shortlistSheet, "A2", "Generated: "+s.GeneratedAt.UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	const headerRow = 4
	if err := f.SetSheetRow(shortlistSheet, "A"+strconv.Itoa(headerRow), &headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(shortlistSheet, "A"+strconv.Itoa(headerRow), last+strconv.Itoa(headerRow), headerStyle); err != nil {
		return err
	}
	_ = f.SetColWidth(shortlistSheet, "A", "A", 8)
	_ = f.SetColWidth(shortlistSheet, "B", "F", 24)

	for i, r := range s.Rows {
		row := headerRow + 1 + i
		e := r.Entry
		vals := []any{
			e.Rank,
			e.ApplicationID,
			e.CandidateID,
			r.Name,
			r.Email,
			e.AppliedAt.UTC().Format(time.RFC3339),
			e.ScoreBreakdown.NormalizedScore,
			e.ScoreBreakdown.PassedCount(),
		}
		for _, raw := range s.rawScores(e) {
			if raw == "" {
				vals = append(vals, "")
				continue
			}
			v, _ := strconv.ParseFloat(raw, 64)
			vals = append(vals, v)
		}
		cell := "A" + strconv.Itoa(row)
		if err := f.SetSheetRow(shortlistSheet, cell, &vals); err != nil {
			return err
		}
		if err := f.SetCellStyle(shortlistSheet, cell, last+strconv.Itoa(row), bands[bandColor(e.ScoreBreakdown.NormalizedScore)]); err != nil {
			return err
		}
	}

	if len(s.Rows) > 0 {
		ref := fmt.Sprintf("A%d:%s%d", headerRow, last, headerRow+len(s.Rows))
		if err := f.AutoFilter(shortlistSheet, ref, []excelize.AutoFilterOptions{}); err != nil {
			return err
		}
	}
	return f.SetPanes(shortlistSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: "A" + strconv.Itoa(headerRow+1),
		ActivePane:  "bottomLeft",
	})
}
