package pricing

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/exposeprofi/proposals/internal/catalog"
)

type Source string

const (
	SourceCatalog Source = "catalog"
	SourceCustom  Source = "custom"
	SourceUnknown Source = "unknown"
)

// Resolution is the outcome of pricing one service line. Complete is false when the
// selection lacks what the service's price depends on; UnitPrice is 0 then.
type Resolution struct {
	UnitPrice float64 `json:"unitPrice"`
	Complete  bool    `json:"complete"`
	Source    Source  `json:"source"`
}

// Engine resolves unit prices against an injected catalog.
type Engine struct {
	catalog    *catalog.Catalog
	strategies map[string]Strategy
	logger     *slog.Logger
}

// NewEngine builds a strategy for every catalog service using registry. A nil
// registry means DefaultRegistry.
func NewEngine(c *catalog.Catalog, registry *Registry, logger *slog.Logger) (*Engine, error) {
	if c == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if registry == nil {
		registry = DefaultRegistry()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	strategies := make(map[string]Strategy)
	for _, svc := range c.Services() {
		strategy, err := registry.Build(svc)
		if err != nil {
			return nil, err
		}
		if strategy != nil {
			strategies[svc.ID] = strategy
		}
	}

	return &Engine{
		catalog:    c,
		strategies: strategies,
		logger:     logger,
	}, nil
}

// Resolve prices one unit of serviceID. A positive customUnitPrice always wins.
func (e *Engine) Resolve(serviceID string, quantity int, params Parameters, customUnitPrice float64) Resolution {
	if customUnitPrice > 0 {
		return Resolution{UnitPrice: customUnitPrice, Complete: true, Source: SourceCustom}
	}

	if _, ok := e.catalog.Service(serviceID); !ok {
		e.logger.Warn("price requested for unknown service", "service_id", serviceID)
		return Resolution{Source: SourceUnknown}
	}

	strategy, ok := e.strategies[serviceID]
	if !ok {
		return Resolution{Source: SourceCatalog}
	}

	price, ok := strategy.Price(quantity, params)
	if !ok {
		return Resolution{Source: SourceCatalog}
	}
	return Resolution{UnitPrice: price, Complete: true, Source: SourceCatalog}
}

// ResolvePrice returns only the unit price of Resolve.
func (e *Engine) ResolvePrice(serviceID string, quantity int, params Parameters, customUnitPrice float64) float64 {
	return e.Resolve(serviceID, quantity, params, customUnitPrice).UnitPrice
}

// PriceOnRequest reports whether serviceID has no catalog price at all.
func (e *Engine) PriceOnRequest(serviceID string) bool {
	if _, ok := e.catalog.Service(serviceID); !ok {
		return false
	}
	_, ok := e.strategies[serviceID]
	return !ok
}
