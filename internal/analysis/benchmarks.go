// Package analysis implements the deterministic bill analysis engine:
// a benchmark catalogue of per-category cost bands, a line-item classifier
// that flags illegal charges and statistical outliers, and a bill aggregator
// that tallies errors and estimates the recoverable overpayment.
package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	_ "embed"
)

//go:embed benchmarks.json
var defaultBenchmarks []byte

// BenchmarkEntry holds the four cost thresholds for one category, all in
// EUR per square meter per month. The bands must be ordered:
// NormalLow <= NormalHigh <= YellowThreshold <= RedThreshold.
type BenchmarkEntry struct {
	NormalLow       float64 `json:"normal_low"`
	NormalHigh      float64 `json:"normal_high"`
	YellowThreshold float64 `json:"yellow_threshold"`
	RedThreshold    float64 `json:"red_threshold"`
}

// Catalogue is the immutable category → benchmark mapping, loaded once at
// process start.
type Catalogue struct {
	entries map[string]BenchmarkEntry
}

// LoadCatalogue reads and validates a benchmark catalogue from r. A
// malformed catalogue (unordered or negative thresholds) is a fatal
// configuration error: letting it through would silently invert the
// red/yellow classification.
func LoadCatalogue(r io.Reader) (*Catalogue, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading benchmark catalogue: %w", err)
	}

	var entries map[string]BenchmarkEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing benchmark catalogue: %w", err)
	}

	for category, e := range entries {
		if e.NormalLow < 0 {
			return nil, fmt.Errorf("benchmark %q: normal_low is negative (%v)", category, e.NormalLow)
		}
		if e.NormalLow > e.NormalHigh || e.NormalHigh > e.YellowThreshold || e.YellowThreshold > e.RedThreshold {
			return nil, fmt.Errorf("benchmark %q: thresholds out of order (low=%v high=%v yellow=%v red=%v)",
				category, e.NormalLow, e.NormalHigh, e.YellowThreshold, e.RedThreshold)
		}
	}

	return &Catalogue{entries: entries}, nil
}

// LoadCatalogueFile loads a catalogue from a JSON file on disk.
func LoadCatalogueFile(path string) (*Catalogue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening benchmark catalogue %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return LoadCatalogue(f)
}

// DefaultCatalogue loads the compiled-in benchmark catalogue.
func DefaultCatalogue() (*Catalogue, error) {
	return LoadCatalogue(bytes.NewReader(defaultBenchmarks))
}

// Lookup returns the benchmark entry for a category. A missing category is
// not an error; it is the documented path that disables outlier checks for
// items of that category.
func (c *Catalogue) Lookup(category string) (BenchmarkEntry, bool) {
	e, ok := c.entries[category]
	return e, ok
}

// Categories returns the number of configured categories.
func (c *Catalogue) Categories() int {
	return len(c.entries)
}
