package store

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/probatequiz/internal/quiz"
)

// ExportSheet is the name of the worksheet written by ExportXLSX.
const ExportSheet = "Assessments"

var exportHeader = []string{
	"ID", "Completed", "Session", "First Name", "Email", "Phone", "Call",
	"Primary", "Secondary", "Confidence", "Rule", "Flags",
	"tier1", "tier2", "tier3", "tier4", "tier5",
}

// ExportXLSX writes one row per assessment to an "Assessments" sheet.
func ExportXLSX(w io.Writer, rows []Assessment) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := setRow(f, 1, toCells(exportHeader)); err != nil {
		return err
	}
	for i, a := range rows {
		cells := []any{
			a.ID,
			a.CompletedAt.Local().Format("2006-01-02 15:04:05"),
			a.SessionID,
			a.FirstName,
			a.Email,
			a.Phone,
			yesNo(a.ScheduleCall),
			a.Primary,
			a.Secondary,
			a.Confidence,
			a.Rule,
			strings.Join(a.Flags, ", "),
		}
		for _, t := range quiz.AllTiers() {
			cells = append(cells, a.Scores.Get(t))
		}
		if err := setRow(f, i+2, cells); err != nil {
			return err
		}
	}

	if err := f.SetPanes(ExportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(ExportSheet, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func toCells(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
