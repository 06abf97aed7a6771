package xlsxexport

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"nebenscan/internal/domain"
)

func TestWriteReport(t *testing.T) {
	analyzedAt := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	details := "Illegal charge detected: \"reparatur\" - This charge may not be passed to tenants"

	bill := &domain.Bill{
		OriginalName:    "abrechnung.pdf",
		Status:          domain.BillStatusCompleted,
		TotalErrors:     2,
		FormalErrors:    1,
		Outliers:        1,
		EstimatedRefund: 384.50,
		AnalyzedAt:      &analyzedAt,
	}
	items := []domain.LineItem{
		{
			Name:         "Reparaturkosten",
			TotalCost:    120,
			Category:     "other",
			Score:        domain.ScoreRed,
			ErrorType:    domain.ErrorTypeFormal,
			ErrorDetails: &details,
		},
		{
			Name:      "Wasserversorgung",
			TotalCost: 300,
			Category:  "water",
			Score:     domain.ScoreGreen,
			ErrorType: domain.ErrorTypeNone,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, bill, items))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.ElementsMatch(t, []string{"Summary", "Line Items"}, f.GetSheetList())

	billName, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "abrechnung.pdf", billName)

	totalErrors, err := f.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "2", totalErrors)

	refund, err := f.GetCellValue("Summary", "B6")
	require.NoError(t, err)
	assert.Equal(t, "384.5", refund)

	header, err := f.GetCellValue("Line Items", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Name", header)

	firstName, err := f.GetCellValue("Line Items", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Reparaturkosten", firstName)

	firstDetails, err := f.GetCellValue("Line Items", "I2")
	require.NoError(t, err)
	assert.Equal(t, details, firstDetails)

	secondScore, err := f.GetCellValue("Line Items", "G3")
	require.NoError(t, err)
	assert.Equal(t, "green", secondScore)
}

func TestBuildFilename(t *testing.T) {
	name := BuildFilename("Betriebskosten 2023.pdf")
	assert.Regexp(t, `^Betriebskosten_2023_pdf_\d{4}-\d{2}-\d{2}\.xlsx$`, name)
}
