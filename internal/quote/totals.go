package quote

import (
	"github.com/exposeprofi/proposals/internal/pricing"
)

// VATRate is the German standard rate applied to every proposal.
const VATRate = 0.19

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Discount struct {
	Type        DiscountType `json:"type" validate:"omitempty,oneof=percentage fixed"`
	Value       Amount       `json:"value" validate:"gte=0,lte=1000000"`
	Description string       `json:"description,omitempty" validate:"omitempty,max=500"`
}

// ComputeDiscount returns the discount amount for subtotal. A fixed discount is
// not clamped to the subtotal.
func ComputeDiscount(subtotal float64, d *Discount) float64 {
	if d == nil {
		return 0
	}
	switch d.Type {
	case DiscountPercentage:
		return subtotal * d.Value.Float() / 100
	case DiscountFixed:
		return d.Value.Float()
	default:
		return 0
	}
}

// Totals are unrounded; round only when presenting them.
type Totals struct {
	SubtotalNet    float64 `json:"subtotalNet"`
	DiscountAmount float64 `json:"discountAmount"`
	TotalNet       float64 `json:"totalNet"`
	TotalVAT       float64 `json:"totalVat"`
	TotalGross     float64 `json:"totalGross"`
}

// ComputeTotals rolls a subtotal and discount up to net, VAT and gross.
func ComputeTotals(subtotal float64, d *Discount) Totals {
	discount := ComputeDiscount(subtotal, d)
	net := subtotal - discount
	vat := net * VATRate
	return Totals{
		SubtotalNet:    subtotal,
		DiscountAmount: discount,
		TotalNet:       net,
		TotalVAT:       vat,
		TotalGross:     net + vat,
	}
}

// Line is a selected service with its resolved price.
type Line struct {
	Service    SelectedService
	Resolution pricing.Resolution
}

func (l Line) Total() float64 {
	return l.Resolution.UnitPrice * float64(l.Service.Quantity)
}

// Aggregator prices selections and computes their totals.
type Aggregator struct {
	engine *pricing.Engine
}

func NewAggregator(engine *pricing.Engine) *Aggregator {
	return &Aggregator{engine: engine}
}

// Lines prices every service that counts towards the subtotal, in input order.
func (a *Aggregator) Lines(services []SelectedService) []Line {
	lines := make([]Line, 0, len(services))
	for _, svc := range services {
		if !svc.Counts() {
			continue
		}
		lines = append(lines, Line{
			Service:    svc,
			Resolution: a.engine.Resolve(svc.ServiceID, svc.Quantity, svc.Parameters, svc.CustomUnitPrice.Float()),
		})
	}
	return lines
}

func (a *Aggregator) Aggregate(services []SelectedService, d *Discount) Totals {
	return TotalsForLines(a.Lines(services), d)
}

func TotalsForLines(lines []Line, d *Discount) Totals {
	subtotal := 0.0
	for _, line := range lines {
		subtotal += line.Total()
	}
	return ComputeTotals(subtotal, d)
}
