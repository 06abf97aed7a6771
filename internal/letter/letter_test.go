package letter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nebenscan/internal/domain"
	"nebenscan/internal/letter"
)

func strPtr(s string) *string { return &s }

func sampleData() letter.Data {
	return letter.Data{
		LandlordName:  "Hausverwaltung Müller GmbH",
		TenantName:    "Anna Schmidt",
		TenantAddress: "Musterstraße 1, 10115 Berlin",
		BillingPeriod: "01.01.2023 - 31.12.2023",
		Errors: []domain.LineItem{
			{
				Name:         "Bankgebühren",
				TotalCost:    50,
				ErrorType:    domain.ErrorTypeFormal,
				ErrorDetails: strPtr(`Illegal charge detected: "bankgebühren" - This charge may not be passed to tenants`),
			},
			{
				Name:         "Heizkosten",
				TotalCost:    3000,
				ErrorType:    domain.ErrorTypeOutlier,
				ErrorDetails: strPtr("Cost of €5.00/sqm/month significantly exceeds normal range (€1-1.5)"),
			},
		},
		EstimatedRefund: 2140,
		Date:            time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestGenerate_German(t *testing.T) {
	text, err := letter.Generate(letter.LanguageGerman, sampleData())
	require.NoError(t, err)

	assert.Contains(t, text, "Widerspruch gegen die Betriebskostenabrechnung")
	assert.Contains(t, text, "Anna Schmidt")
	assert.Contains(t, text, "Hausverwaltung Müller GmbH")
	assert.Contains(t, text, "15.03.2024")
	assert.Contains(t, text, "Zeitraum 01.01.2023 - 31.12.2023")
	assert.Contains(t, text, "nicht umlagefähige Kosten (§ 2 BetrKV)")
	assert.Contains(t, text, "1. Bankgebühren: €50.00")
	assert.Contains(t, text, "Begründung: Illegal charge detected")
	assert.Contains(t, text, "1. Heizkosten: €3000.00")
	assert.Contains(t, text, "Anmerkung: Cost of €5.00/sqm/month")
	assert.Contains(t, text, "ca. €2140.00")
	assert.Contains(t, text, "nicht um Rechtsberatung")
}

func TestGenerate_English(t *testing.T) {
	text, err := letter.Generate(letter.LanguageEnglish, sampleData())
	require.NoError(t, err)

	assert.Contains(t, text, "OBJECTION TO UTILITY BILL CHARGES")
	assert.Contains(t, text, "3/15/2024")
	assert.Contains(t, text, "non-allocable charges (§ 2 BetrKV)")
	assert.Contains(t, text, "Reason: Illegal charge detected")
	assert.Contains(t, text, "Note: Cost of €5.00/sqm/month")
	assert.Contains(t, text, "approximately €2140.00")
	assert.Contains(t, text, "does not constitute legal advice")
}

func TestGenerate_OmitsEmptySections(t *testing.T) {
	data := sampleData()
	data.Errors = data.Errors[:1] // formal error only

	text, err := letter.Generate(letter.LanguageGerman, data)
	require.NoError(t, err)
	assert.Contains(t, text, "nicht umlagefähige Kosten")
	assert.NotContains(t, text, "auffällige Kosten")
}

func TestGenerate_Deterministic(t *testing.T) {
	first, err := letter.Generate(letter.LanguageGerman, sampleData())
	require.NoError(t, err)
	second, err := letter.Generate(letter.LanguageGerman, sampleData())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerate_UnsupportedLanguage(t *testing.T) {
	_, err := letter.Generate("fr", sampleData())
	assert.Error(t, err)
}
