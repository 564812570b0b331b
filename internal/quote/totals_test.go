package quote

import (
	"math"
	"testing"

	"github.com/exposeprofi/proposals/internal/catalog"
	"github.com/exposeprofi/proposals/internal/pricing"
)

func newTestAggregator(t *testing.T) (*catalog.Catalog, *Aggregator) {
	t.Helper()

	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	engine, err := pricing.NewEngine(c, nil, nil)
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}
	return c, NewAggregator(engine)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeDiscount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		subtotal float64
		discount *Discount
		want     float64
	}{
		{name: "no discount", subtotal: 1000, discount: nil, want: 0},
		{name: "percentage", subtotal: 1000, discount: &Discount{Type: DiscountPercentage, Value: 10}, want: 100},
		{name: "fixed", subtotal: 1000, discount: &Discount{Type: DiscountFixed, Value: 250}, want: 250},
		{name: "fixed exceeds subtotal", subtotal: 100, discount: &Discount{Type: DiscountFixed, Value: 250}, want: 250},
		{name: "unknown type", subtotal: 1000, discount: &Discount{Type: "voucher", Value: 50}, want: 0},
		{name: "percentage of zero", subtotal: 0, discount: &Discount{Type: DiscountPercentage, Value: 10}, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ComputeDiscount(tt.subtotal, tt.discount); !almostEqual(got, tt.want) {
				t.Fatalf("ComputeDiscount() got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeTotals_PercentageDiscount(t *testing.T) {
	t.Parallel()

	totals := ComputeTotals(1000, &Discount{Type: DiscountPercentage, Value: 10})

	if !almostEqual(totals.DiscountAmount, 100) {
		t.Fatalf("discount got %v, want 100", totals.DiscountAmount)
	}
	if !almostEqual(totals.TotalNet, 900) {
		t.Fatalf("net got %v, want 900", totals.TotalNet)
	}
	if got := Round2(totals.TotalVAT); got != 171 {
		t.Fatalf("vat got %v, want 171", got)
	}
	if got := Round2(totals.TotalGross); got != 1071 {
		t.Fatalf("gross got %v, want 1071", got)
	}

	formatted := totals.Formatted()
	if formatted.TotalVAT != "171,00 €" {
		t.Fatalf("formatted vat got %q, want %q", formatted.TotalVAT, "171,00 €")
	}
	if formatted.TotalGross != "1.071,00 €" {
		t.Fatalf("formatted gross got %q, want %q", formatted.TotalGross, "1.071,00 €")
	}
}

func TestComputeTotals_FixedDiscountCanTurnNetNegative(t *testing.T) {
	t.Parallel()

	totals := ComputeTotals(100, &Discount{Type: DiscountFixed, Value: 150})
	if !almostEqual(totals.TotalNet, -50) {
		t.Fatalf("net got %v, want -50", totals.TotalNet)
	}
	if !almostEqual(totals.TotalGross, -59.5) {
		t.Fatalf("gross got %v, want -59.5", totals.TotalGross)
	}
}

func TestAggregator_Aggregate(t *testing.T) {
	t.Parallel()

	_, agg := newTestAggregator(t)

	services := []SelectedService{
		{ServiceID: "exterior-ground", Selected: true, Quantity: 2, Parameters: pricing.Parameters{BuildingType: "EFH"}},
		{ServiceID: "interior", Selected: true, Quantity: 1},
		{ServiceID: "slideshow", Selected: false, Quantity: 1},
		{ServiceID: "social-media", Selected: true, Quantity: 0},
		{ServiceID: "terrace", Selected: true, Quantity: 1, CustomUnitPrice: 500},
	}

	lines := agg.Lines(services)
	if len(lines) != 3 {
		t.Fatalf("lines got %d, want 3", len(lines))
	}
	if lines[0].Total() != 698 {
		t.Fatalf("first line total got %v, want 698", lines[0].Total())
	}

	totals := agg.Aggregate(services, nil)
	if !almostEqual(totals.SubtotalNet, 698+399+500) {
		t.Fatalf("subtotal got %v, want %v", totals.SubtotalNet, 698+399+500)
	}
	if totals.DiscountAmount != 0 {
		t.Fatalf("discount got %v, want 0", totals.DiscountAmount)
	}
}

func TestAggregator_IncompleteSelectionContributesZero(t *testing.T) {
	t.Parallel()

	_, agg := newTestAggregator(t)

	services := []SelectedService{
		{ServiceID: "exterior-ground", Selected: true, Quantity: 3},
		{ServiceID: "hologram", Selected: true, Quantity: 2},
	}

	lines := agg.Lines(services)
	for _, line := range lines {
		if line.Resolution.Complete {
			t.Fatalf("line %s got complete, want incomplete", line.Service.ServiceID)
		}
	}
	if totals := agg.Aggregate(services, nil); totals.SubtotalNet != 0 {
		t.Fatalf("subtotal got %v, want 0", totals.SubtotalNet)
	}
}

func TestAggregator_RecomputationIsIdempotent(t *testing.T) {
	t.Parallel()

	_, agg := newTestAggregator(t)

	services := []SelectedService{
		{ServiceID: "interior", Selected: true, Quantity: 7},
		{ServiceID: "2d-floorplan", Selected: true, Quantity: 3, Parameters: pricing.Parameters{ApartmentSize: "bis-80qm"}},
		{ServiceID: "renovation", Selected: true, Quantity: 1, CustomUnitPrice: 133.33},
	}
	discount := &Discount{Type: DiscountPercentage, Value: 7.5}

	first := agg.Aggregate(services, discount)
	for i := 0; i < 50; i++ {
		if got := agg.Aggregate(services, discount); got != first {
			t.Fatalf("recomputation %d got %+v, want %+v", i, got, first)
		}
	}
}
