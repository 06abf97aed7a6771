package analysis

import (
	"fmt"
	"strings"

	"nebenscan/internal/domain"
)

// Classifier evaluates a single line item against the illegal-charge
// keyword list and the benchmark catalogue.
type Classifier struct {
	catalogue *Catalogue
}

// NewClassifier creates a Classifier backed by the given catalogue.
func NewClassifier(catalogue *Catalogue) *Classifier {
	return &Classifier{catalogue: catalogue}
}

// ClassifyItem returns an annotated copy of item; the input is never
// mutated. The checks run in strict order: keyword scan first, then the
// benchmark comparison. A formal error is never downgraded by the outlier
// check, but outlier messages still accumulate on formal-error items so the
// objection letter can cite every applicable finding.
func (c *Classifier) ClassifyItem(item domain.LineItem, squareMeters float64) domain.LineItem {
	analyzed := item
	var messages []string

	nameLower := strings.ToLower(item.Name)
	for _, keyword := range illegalKeywords {
		if strings.Contains(nameLower, keyword) {
			messages = append(messages,
				fmt.Sprintf("Illegal charge detected: %q - This charge may not be passed to tenants", keyword))
			analyzed.ErrorType = domain.ErrorTypeFormal
			analyzed.Score = domain.ScoreRed
			break
		}
	}

	benchmark, ok := c.catalogue.Lookup(item.Category)
	if ok && squareMeters > 0 && item.TotalCost > 0 {
		monthlyCost := item.TotalCost / 12
		costPerSqm := monthlyCost / squareMeters

		low := benchmark.NormalLow
		high := benchmark.NormalHigh
		analyzed.BenchmarkLow = &low
		analyzed.BenchmarkHigh = &high

		switch {
		case costPerSqm > benchmark.RedThreshold:
			messages = append(messages,
				fmt.Sprintf("Cost of €%.2f/sqm/month significantly exceeds normal range (€%g-%g)",
					costPerSqm, benchmark.NormalLow, benchmark.NormalHigh))
			if analyzed.ErrorType == "" {
				analyzed.ErrorType = domain.ErrorTypeOutlier
				analyzed.Score = domain.ScoreRed
			}
		case costPerSqm > benchmark.YellowThreshold:
			messages = append(messages,
				fmt.Sprintf("Cost of €%.2f/sqm/month is above average (normal: €%g-%g)",
					costPerSqm, benchmark.NormalLow, benchmark.NormalHigh))
			if analyzed.ErrorType == "" {
				analyzed.ErrorType = domain.ErrorTypeOutlier
				analyzed.Score = domain.ScoreYellow
			}
		default:
			if analyzed.Score == "" {
				analyzed.Score = domain.ScoreGreen
			}
			if analyzed.ErrorType == "" {
				analyzed.ErrorType = domain.ErrorTypeNone
			}
		}
	} else {
		if analyzed.Score == "" {
			analyzed.Score = domain.ScoreGreen
		}
		if analyzed.ErrorType == "" {
			analyzed.ErrorType = domain.ErrorTypeNone
		}
	}

	if len(messages) > 0 {
		details := strings.Join(messages, "; ")
		analyzed.ErrorDetails = &details
	} else {
		analyzed.ErrorDetails = nil
	}

	return analyzed
}
