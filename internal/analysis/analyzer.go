package analysis

import (
	"math"

	"nebenscan/internal/domain"
)

// Result is the outcome of analyzing one bill: every line item annotated in
// input order plus the aggregate counters and the refund estimate.
type Result struct {
	LineItems       []domain.LineItem `json:"line_items"`
	TotalErrors     int               `json:"total_errors"`
	FormalErrors    int               `json:"formal_errors"`
	Outliers        int               `json:"outliers"`
	EstimatedRefund float64           `json:"estimated_refund"`
}

// Analyzer runs the classifier over a whole bill and aggregates the result.
type Analyzer struct {
	classifier *Classifier
	catalogue  *Catalogue
}

// NewAnalyzer creates an Analyzer backed by the given catalogue.
func NewAnalyzer(catalogue *Catalogue) *Analyzer {
	return &Analyzer{
		classifier: NewClassifier(catalogue),
		catalogue:  catalogue,
	}
}

// Classifier exposes the per-item classifier, mainly for tests.
func (a *Analyzer) Classifier() *Classifier {
	return a.classifier
}

// AnalyzeBill classifies every line item and computes the aggregate
// counters and refund estimate. A non-positive floor area is treated as
// 1 sqm so the per-area math never divides by zero.
//
// The refund is a heuristic, not a legal computation: 80% of each illegal
// charge is assumed recoverable, and red outliers contribute the annualized
// overcharge above NormalHigh, the top of the acceptable band. The total is
// rounded half away from zero at the cent.
func (a *Analyzer) AnalyzeBill(items []domain.LineItem, squareMeters float64) *Result {
	if squareMeters <= 0 {
		squareMeters = 1
	}

	analyzed := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		analyzed = append(analyzed, a.classifier.ClassifyItem(item, squareMeters))
	}

	var formalErrors, outliers int
	var estimatedRefund float64
	for i := range analyzed {
		item := &analyzed[i]
		switch item.ErrorType {
		case domain.ErrorTypeFormal:
			formalErrors++
			estimatedRefund += item.TotalCost * 0.8
		case domain.ErrorTypeOutlier:
			outliers++
			if item.Score != domain.ScoreRed {
				continue // yellow outliers contribute nothing
			}
			benchmark, ok := a.catalogue.Lookup(item.Category)
			if !ok {
				continue
			}
			costPerSqm := item.TotalCost / 12 / squareMeters
			if costPerSqm > benchmark.NormalHigh {
				monthlyOvercharge := (costPerSqm - benchmark.NormalHigh) * squareMeters
				estimatedRefund += monthlyOvercharge * 12
			}
		}
	}

	return &Result{
		LineItems:       analyzed,
		TotalErrors:     formalErrors + outliers,
		FormalErrors:    formalErrors,
		Outliers:        outliers,
		EstimatedRefund: roundCents(estimatedRefund),
	}
}

// roundCents rounds half away from zero at two decimal places.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
