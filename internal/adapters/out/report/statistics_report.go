// Package report exports statistics as an xlsx workbook with the sheets
// Statistics, Destinations and Operators.
package report

import (
	"fmt"
	"io"
	"time"

	"postal/internal/core/domain/services"

	"github.com/xuri/excelize/v2"
)

const (
	StatisticsSheet   = "Statistics"
	DestinationsSheet = "Destinations"
	OperatorsSheet    = "Operators"
)

// WriteStatistics renders stats and writes the workbook to w.
func WriteStatistics(w io.Writer, stats services.Statistics) error {
	f, err := buildWorkbook(stats)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveStatistics renders stats into the xlsx file at path.
func SaveStatistics(path string, stats services.Statistics) error {
	f, err := buildWorkbook(stats)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func buildWorkbook(stats services.Statistics) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	summary := [][]any{
		{"Period from", formatBound(stats.From)},
		{"Period to", formatBound(stats.To)},
		{"Total parcels", stats.Total},
	}
	for _, sc := range stats.ByStatus {
		summary = append(summary, []any{sc.Status.String(), sc.Count})
	}
	summary = append(summary,
		[]any{"Average local delivery days", formatAverage(stats.AvgLocalDays)},
		[]any{"Average international delivery days", formatAverage(stats.AvgInternationalDays)},
	)

	destinations := make([][]any, 0, len(stats.Destinations))
	for _, d := range stats.Destinations {
		destinations = append(destinations, []any{d.Country, d.Count})
	}

	operators := make([][]any, 0, len(stats.TopOperators))
	for i, o := range stats.TopOperators {
		operators = append(operators, []any{i + 1, o.ID, o.Name, o.Processed})
	}

	sheets := []struct {
		name   string
		header []any
		rows   [][]any
		widths []float64
	}{
		{StatisticsSheet, []any{"Metric", "Value"}, summary, []float64{38, 28}},
		{DestinationsSheet, []any{"Country", "Parcels"}, destinations, []float64{28, 12}},
		{OperatorsSheet, []any{"Rank", "Operator ID", "Name", "Processed"}, operators, []float64{8, 14, 30, 12}},
	}

	for i, sheet := range sheets {
		if i == 0 {
			err = f.SetSheetName("Sheet1", sheet.name)
		} else {
			_, err = f.NewSheet(sheet.name)
		}
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
		}

		if err := writeSheet(f, sheet.name, sheet.header, sheet.rows, sheet.widths, headerStyle); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any, widths []float64, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}

	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}

	return nil
}

func formatBound(t *time.Time) string {
	if t == nil {
		return "open"
	}
	return t.Format(time.DateOnly)
}

func formatAverage(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}
