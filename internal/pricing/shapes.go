package pricing

import (
	"fmt"

	"github.com/exposeprofi/proposals/internal/catalog"
)

// MatrixStrategy prices by a categorical parameter and a quantity bracket. Row i
// holds the unit price for quantity i+1; quantities past the last bracket use it.
type MatrixStrategy struct {
	Parameter string
	Rows      map[string][]float64
}

func (s MatrixStrategy) Price(quantity int, params Parameters) (float64, bool) {
	row, ok := s.Rows[params.Get(s.Parameter)]
	if !ok || len(row) == 0 {
		return 0, false
	}
	bracket := quantity
	if bracket < 1 {
		bracket = 1
	}
	if bracket > len(row) {
		bracket = len(row)
	}
	return row[bracket-1], true
}

// CategoricalStrategy prices by a single enumerated parameter.
type CategoricalStrategy struct {
	Parameter string
	Prices    map[string]float64
}

func (s CategoricalStrategy) Price(_ int, params Parameters) (float64, bool) {
	price, ok := s.Prices[params.Get(s.Parameter)]
	if !ok {
		return 0, false
	}
	return price, true
}

// TieredStrategy prices by quantity alone. Tiers are ascending by threshold; the
// highest threshold not above the quantity wins.
type TieredStrategy struct {
	Tiers []catalog.PricingTier
}

func (s TieredStrategy) Price(quantity int, _ Parameters) (float64, bool) {
	if len(s.Tiers) == 0 {
		return 0, false
	}
	price := s.Tiers[0].UnitPrice
	for _, tier := range s.Tiers {
		if tier.QuantityThreshold > quantity {
			break
		}
		price = tier.UnitPrice
	}
	return price, true
}

type ConstantStrategy struct {
	UnitPrice float64
}

func (s ConstantStrategy) Price(int, Parameters) (float64, bool) {
	return s.UnitPrice, true
}

func newMatrixStrategy(svc catalog.ServiceDescriptor) (Strategy, error) {
	if len(svc.Pricing.Matrix) == 0 {
		return nil, fmt.Errorf("matrix pricing needs at least one row")
	}
	if err := checkParameter(svc.Pricing.Parameter); err != nil {
		return nil, err
	}
	return MatrixStrategy{Parameter: svc.Pricing.Parameter, Rows: svc.Pricing.Matrix}, nil
}

func newCategoricalStrategy(svc catalog.ServiceDescriptor) (Strategy, error) {
	if len(svc.Pricing.Options) == 0 {
		return nil, fmt.Errorf("categorical pricing needs at least one option")
	}
	if err := checkParameter(svc.Pricing.Parameter); err != nil {
		return nil, err
	}
	return CategoricalStrategy{Parameter: svc.Pricing.Parameter, Prices: svc.Pricing.Options}, nil
}

func newTieredStrategy(svc catalog.ServiceDescriptor) (Strategy, error) {
	if len(svc.PricingTiers) == 0 {
		return nil, fmt.Errorf("tiered pricing needs pricing tiers")
	}
	return TieredStrategy{Tiers: svc.PricingTiers}, nil
}

func newConstantStrategy(svc catalog.ServiceDescriptor) (Strategy, error) {
	switch {
	case svc.Pricing.UnitPrice != nil:
		return ConstantStrategy{UnitPrice: *svc.Pricing.UnitPrice}, nil
	case svc.DefaultPrice != nil:
		return ConstantStrategy{UnitPrice: *svc.DefaultPrice}, nil
	default:
		return nil, fmt.Errorf("constant pricing needs a unit price or default price")
	}
}

func checkParameter(name string) error {
	switch name {
	case ParamBuildingType, ParamApartmentSize:
		return nil
	default:
		return fmt.Errorf("unsupported pricing parameter %q", name)
	}
}
