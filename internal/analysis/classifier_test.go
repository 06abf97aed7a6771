package analysis_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nebenscan/internal/analysis"
	"nebenscan/internal/domain"
)

func testCatalogue(t *testing.T) *analysis.Catalogue {
	t.Helper()
	cat, err := analysis.LoadCatalogue(strings.NewReader(`{
		"heating": {"normal_low": 1.0, "normal_high": 1.5, "yellow_threshold": 1.8, "red_threshold": 2.2},
		"water":   {"normal_low": 0.25, "normal_high": 0.45, "yellow_threshold": 0.6, "red_threshold": 0.8}
	}`))
	require.NoError(t, err)
	return cat
}

func TestClassifyItem_FormalError(t *testing.T) {
	c := analysis.NewClassifier(testCatalogue(t))

	t.Run("keyword_match_wins_regardless_of_category", func(t *testing.T) {
		item := domain.LineItem{Name: "Bankgebühren", Category: "other", TotalCost: 50}
		got := c.ClassifyItem(item, 80)

		assert.Equal(t, domain.ErrorTypeFormal, got.ErrorType)
		assert.Equal(t, domain.ScoreRed, got.Score)
		require.NotNil(t, got.ErrorDetails)
		assert.Contains(t, *got.ErrorDetails, "bankgebühren")
	})

	t.Run("case_insensitive", func(t *testing.T) {
		item := domain.LineItem{Name: "REPARATURKOSTEN Dach", Category: "other", TotalCost: 500}
		got := c.ClassifyItem(item, 80)

		assert.Equal(t, domain.ErrorTypeFormal, got.ErrorType)
		require.NotNil(t, got.ErrorDetails)
		assert.Contains(t, *got.ErrorDetails, "reparatur")
	})

	t.Run("first_keyword_wins_no_double_report", func(t *testing.T) {
		// Name matches both "reparatur" and "instandhaltung"; only the
		// earlier keyword in the list may be reported.
		item := domain.LineItem{Name: "Instandhaltung und Reparatur", TotalCost: 100}
		got := c.ClassifyItem(item, 80)

		require.NotNil(t, got.ErrorDetails)
		assert.Contains(t, *got.ErrorDetails, "reparatur")
		assert.NotContains(t, *got.ErrorDetails, "instandhaltung\"")
		assert.Equal(t, 1, strings.Count(*got.ErrorDetails, "Illegal charge detected"))
	})

	t.Run("zero_cost_still_flagged", func(t *testing.T) {
		item := domain.LineItem{Name: "Verwaltungskosten", Category: "water", TotalCost: 0}
		got := c.ClassifyItem(item, 80)

		assert.Equal(t, domain.ErrorTypeFormal, got.ErrorType)
		assert.Equal(t, domain.ScoreRed, got.Score)
	})
}

func TestClassifyItem_Outlier(t *testing.T) {
	c := analysis.NewClassifier(testCatalogue(t))

	t.Run("red_outlier", func(t *testing.T) {
		// 3000/12 = 250/month; 250/50 = 5.0/sqm > red threshold 2.2
		item := domain.LineItem{Name: "Heizkosten", Category: "heating", TotalCost: 3000}
		got := c.ClassifyItem(item, 50)

		assert.Equal(t, domain.ErrorTypeOutlier, got.ErrorType)
		assert.Equal(t, domain.ScoreRed, got.Score)
		require.NotNil(t, got.ErrorDetails)
		assert.Contains(t, *got.ErrorDetails, "€5.00/sqm/month significantly exceeds normal range (€1-1.5)")
	})

	t.Run("yellow_outlier", func(t *testing.T) {
		// 1920/12/80 = 2.0/sqm: above yellow (1.8), below red (2.2)
		item := domain.LineItem{Name: "Heizkosten", Category: "heating", TotalCost: 1920}
		got := c.ClassifyItem(item, 80)

		assert.Equal(t, domain.ErrorTypeOutlier, got.ErrorType)
		assert.Equal(t, domain.ScoreYellow, got.Score)
		require.NotNil(t, got.ErrorDetails)
		assert.Contains(t, *got.ErrorDetails, "above average")
	})

	t.Run("within_band_is_green", func(t *testing.T) {
		// 1200/12/80 = 1.25/sqm: inside the normal band
		item := domain.LineItem{Name: "Heizkosten", Category: "heating", TotalCost: 1200}
		got := c.ClassifyItem(item, 80)

		assert.Equal(t, domain.ErrorTypeNone, got.ErrorType)
		assert.Equal(t, domain.ScoreGreen, got.Score)
		assert.Nil(t, got.ErrorDetails)
	})

	t.Run("benchmarks_attached_even_when_clean", func(t *testing.T) {
		item := domain.LineItem{Name: "Wasserversorgung", Category: "water", TotalCost: 300}
		got := c.ClassifyItem(item, 80)

		require.NotNil(t, got.BenchmarkLow)
		require.NotNil(t, got.BenchmarkHigh)
		assert.Equal(t, 0.25, *got.BenchmarkLow)
		assert.Equal(t, 0.45, *got.BenchmarkHigh)
	})

	t.Run("unknown_category_never_outlier", func(t *testing.T) {
		item := domain.LineItem{Name: "Sonstiges", Category: "exotic", TotalCost: 99999}
		got := c.ClassifyItem(item, 10)

		assert.Equal(t, domain.ErrorTypeNone, got.ErrorType)
		assert.Equal(t, domain.ScoreGreen, got.Score)
		assert.Nil(t, got.BenchmarkLow)
		assert.Nil(t, got.BenchmarkHigh)
	})

	t.Run("zero_total_cost_skips_outlier_check", func(t *testing.T) {
		item := domain.LineItem{Name: "Wasser", Category: "water", TotalCost: 0}
		got := c.ClassifyItem(item, 80)

		assert.Equal(t, domain.ErrorTypeNone, got.ErrorType)
		assert.Equal(t, domain.ScoreGreen, got.Score)
		assert.Nil(t, got.ErrorDetails)
	})

	t.Run("zero_sqm_skips_outlier_check", func(t *testing.T) {
		item := domain.LineItem{Name: "Heizkosten", Category: "heating", TotalCost: 9000}
		got := c.ClassifyItem(item, 0)

		assert.Equal(t, domain.ErrorTypeNone, got.ErrorType)
		assert.Equal(t, domain.ScoreGreen, got.Score)
	})
}

func TestClassifyItem_FormalErrorKeepsOutlierMessage(t *testing.T) {
	c := analysis.NewClassifier(testCatalogue(t))

	// Keyword match AND red-threshold breach: classification stays
	// formal_error/red, but both messages must be visible.
	item := domain.LineItem{Name: "Reparatur Heizung", Category: "heating", TotalCost: 6000}
	got := c.ClassifyItem(item, 50)

	assert.Equal(t, domain.ErrorTypeFormal, got.ErrorType)
	assert.Equal(t, domain.ScoreRed, got.Score)
	require.NotNil(t, got.ErrorDetails)
	assert.Contains(t, *got.ErrorDetails, "Illegal charge detected")
	assert.Contains(t, *got.ErrorDetails, "significantly exceeds normal range")
	assert.Contains(t, *got.ErrorDetails, "; ")
	require.NotNil(t, got.BenchmarkLow)
	require.NotNil(t, got.BenchmarkHigh)
}

func TestClassifyItem_DoesNotMutateInput(t *testing.T) {
	c := analysis.NewClassifier(testCatalogue(t))

	item := domain.LineItem{Name: "Bankgebühren", Category: "heating", TotalCost: 3000}
	_ = c.ClassifyItem(item, 50)

	assert.Empty(t, item.Score)
	assert.Empty(t, item.ErrorType)
	assert.Nil(t, item.ErrorDetails)
	assert.Nil(t, item.BenchmarkLow)
}
