package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"nebenscan/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
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

// Writer wraps csv.Writer for exporting analyzed line items as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteLineItems converts line items to CSV rows and writes them.
func (w *Writer) WriteLineItems(items []domain.LineItem) error {
	for i := range items {
		row := itemToRow(&items[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func itemToRow(item *domain.LineItem) []string {
	row := make([]string, len(columns))
	row[0] = item.Name
	row[1] = formatOptional(item.Amount)
	row[2] = item.Unit
	row[3] = formatOptionalMoney(item.CostPerUnit)
	row[4] = formatMoney(item.TotalCost)
	row[5] = item.Category
	row[6] = string(item.Score)
	row[7] = string(item.ErrorType)
	if item.ErrorDetails != nil {
		row[8] = *item.ErrorDetails
	}
	row[9] = formatOptionalMoney(item.BenchmarkLow)
	row[10] = formatOptionalMoney(item.BenchmarkHigh)
	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatOptionalMoney(v *float64) string {
	if v == nil {
		return ""
	}
	return formatMoney(*v)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a bill name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_bill_name}_{YYYY-MM-DD}.csv
func BuildFilename(billName string) string {
	sanitized := SanitizeFilename(billName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
