package extractor

import (
	"fmt"

	"nebenscan/internal/config"
	"nebenscan/internal/port"
)

// ProviderFactory is a function that creates a BillExtractor from an
// extractor config.
type ProviderFactory func(cfg *config.ExtractorConfig) (port.BillExtractor, error)

// registry of extractor provider factories, populated explicitly via
// RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an extractor provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewExtractor creates a BillExtractor from the config using the registered
// factory.
func NewExtractor(cfg *config.ExtractorConfig) (port.BillExtractor, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown extractor provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
