// Package xlsxexport builds the Excel version of the bill report: a summary
// sheet with the aggregate findings and a sheet listing every analyzed line
// item.
package xlsxexport

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"nebenscan/internal/csvexport"
	"nebenscan/internal/domain"
)

const (
	summarySheet = "Summary"
	itemsSheet   = "Line Items"
)

var itemColumns = []string{
	"Name",
	"Amount",
	"Unit",
	"Cost Per Unit",
	"Total Cost",
	"Category",
	"Score",
	"Error Type",
	"Error Details",
	"Benchmark Low",
	"Benchmark High",
}

// WriteReport writes the bill report workbook to w.
func WriteReport(w io.Writer, bill *domain.Bill, items []domain.LineItem) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	f.SetSheetName("Sheet1", summarySheet)
	if err := writeSummary(f, bill); err != nil {
		return err
	}

	if _, err := f.NewSheet(itemsSheet); err != nil {
		return fmt.Errorf("creating line items sheet: %w", err)
	}
	if err := writeItems(f, items); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, bill *domain.Bill) error {
	rows := [][2]interface{}{
		{"Bill", bill.OriginalName},
		{"Status", string(bill.Status)},
		{"Total Errors", bill.TotalErrors},
		{"Formal Errors", bill.FormalErrors},
		{"Outliers", bill.Outliers},
		{"Estimated Refund (EUR)", bill.EstimatedRefund},
		{"Analyzed At", formatTime(bill.AnalyzedAt)},
	}

	for i, row := range rows {
		keyCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valCell, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := f.SetCellValue(summarySheet, keyCell, row[0]); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
		if err := f.SetCellValue(summarySheet, valCell, row[1]); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}
	return nil
}

func writeItems(f *excelize.File, items []domain.LineItem) error {
	for col, name := range itemColumns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(itemsSheet, cell, name); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i := range items {
		item := &items[i]
		values := []interface{}{
			item.Name,
			optional(item.Amount),
			item.Unit,
			optional(item.CostPerUnit),
			item.TotalCost,
			item.Category,
			string(item.Score),
			string(item.ErrorType),
			optionalString(item.ErrorDetails),
			optional(item.BenchmarkLow),
			optional(item.BenchmarkHigh),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(itemsSheet, cell, v); err != nil {
				return fmt.Errorf("writing item row %d: %w", i+1, err)
			}
		}
	}
	return nil
}

func optional(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func optionalString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_bill_name}_{YYYY-MM-DD}.xlsx
func BuildFilename(billName string) string {
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.xlsx", csvexport.SanitizeFilename(billName), date)
}
