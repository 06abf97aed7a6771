package analysis_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nebenscan/internal/analysis"
)

func TestLoadCatalogue_Valid(t *testing.T) {
	cat, err := analysis.LoadCatalogue(strings.NewReader(`{
		"heating": {"normal_low": 1.0, "normal_high": 1.5, "yellow_threshold": 1.8, "red_threshold": 2.2}
	}`))
	require.NoError(t, err)

	entry, ok := cat.Lookup("heating")
	require.True(t, ok)
	assert.Equal(t, 1.0, entry.NormalLow)
	assert.Equal(t, 1.5, entry.NormalHigh)
	assert.Equal(t, 1.8, entry.YellowThreshold)
	assert.Equal(t, 2.2, entry.RedThreshold)
}

func TestLoadCatalogue_UnknownCategory(t *testing.T) {
	cat, err := analysis.LoadCatalogue(strings.NewReader(`{}`))
	require.NoError(t, err)

	_, ok := cat.Lookup("heating")
	assert.False(t, ok)
}

func TestLoadCatalogue_RejectsUnorderedThresholds(t *testing.T) {
	cases := map[string]string{
		"low_above_high":    `{"heating": {"normal_low": 2.0, "normal_high": 1.5, "yellow_threshold": 1.8, "red_threshold": 2.2}}`,
		"high_above_yellow": `{"heating": {"normal_low": 1.0, "normal_high": 1.9, "yellow_threshold": 1.8, "red_threshold": 2.2}}`,
		"yellow_above_red":  `{"heating": {"normal_low": 1.0, "normal_high": 1.5, "yellow_threshold": 2.5, "red_threshold": 2.2}}`,
		"negative_low":      `{"heating": {"normal_low": -0.1, "normal_high": 1.5, "yellow_threshold": 1.8, "red_threshold": 2.2}}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := analysis.LoadCatalogue(strings.NewReader(raw))
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalogue_RejectsMalformedJSON(t *testing.T) {
	_, err := analysis.LoadCatalogue(strings.NewReader(`not json`))
	assert.Error(t, err)
}

func TestDefaultCatalogue(t *testing.T) {
	cat, err := analysis.DefaultCatalogue()
	require.NoError(t, err)
	assert.Greater(t, cat.Categories(), 0)

	// The embedded catalogue must cover the core German utility categories.
	for _, category := range []string{"heating", "water", "garbage"} {
		_, ok := cat.Lookup(category)
		assert.True(t, ok, "category %s should be present", category)
	}
}
