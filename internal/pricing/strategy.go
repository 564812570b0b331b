// Package pricing resolves unit prices for catalog services.
package pricing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/exposeprofi/proposals/internal/catalog"
)

// Parameters are the service-specific inputs a strategy may key on.
type Parameters struct {
	BuildingType  string `json:"buildingType,omitempty" validate:"omitempty,max=64"`
	ApartmentSize string `json:"apartmentSize,omitempty" validate:"omitempty,max=64"`
}

// Get returns the value of the named parameter.
func (p Parameters) Get(name string) string {
	switch name {
	case ParamBuildingType:
		return strings.TrimSpace(p.BuildingType)
	case ParamApartmentSize:
		return strings.TrimSpace(p.ApartmentSize)
	default:
		return ""
	}
}

const (
	ParamBuildingType  = "buildingType"
	ParamApartmentSize = "apartmentSize"
)

// Strategy prices one unit of a service. ok is false when the inputs are not
// enough to resolve a price; the returned price is then 0.
type Strategy interface {
	Price(quantity int, params Parameters) (price float64, ok bool)
}

type Kind string

const (
	KindMatrix      Kind = "matrix"
	KindCategorical Kind = "categorical"
	KindTiered      Kind = "tiered"
	KindConstant    Kind = "constant"
)

// Factory builds a strategy from a catalog descriptor.
type Factory func(svc catalog.ServiceDescriptor) (Strategy, error)

// Registry maps strategy kinds to factories.
type Registry struct {
	factories map[Kind]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[Kind]Factory)}
}

// DefaultRegistry returns a registry with the built-in pricing shapes.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(KindMatrix, newMatrixStrategy)
	r.Register(KindCategorical, newCategoricalStrategy)
	r.Register(KindTiered, newTieredStrategy)
	r.Register(KindConstant, newConstantStrategy)
	return r
}

func (r *Registry) Register(kind Kind, factory Factory) {
	r.factories[kind] = factory
}

func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Build returns the strategy for svc. A service without a strategy returns nil,
// meaning its price is on request.
func (r *Registry) Build(svc catalog.ServiceDescriptor) (Strategy, error) {
	kind := Kind(strings.TrimSpace(svc.Pricing.Strategy))
	if kind == "" {
		switch {
		case len(svc.PricingTiers) > 0:
			kind = KindTiered
		case svc.DefaultPrice != nil:
			kind = KindConstant
		default:
			return nil, nil
		}
	}

	factory, ok := r.factories[kind]
	if !ok {
		return nil, fmt.Errorf("service %s: unknown pricing strategy %q", svc.ID, kind)
	}
	strategy, err := factory(svc)
	if err != nil {
		return nil, fmt.Errorf("service %s: %w", svc.ID, err)
	}
	return strategy, nil
}
