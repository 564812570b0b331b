package models

import (
	"testing"

	"github.com/exposeprofi/proposals/internal/delivery"
	"github.com/exposeprofi/proposals/internal/proposal"
	"github.com/exposeprofi/proposals/internal/quote"
)

func TestNewProposal(t *testing.T) {
	t.Parallel()

	record := &proposal.Record{
		OfferNumber: "AN-250314-ABC123",
		Currency:    "EUR",
		Client:      proposal.ClientInfo{CompanyName: "Acme AG", City: "Köln", Country: "Deutschland"},
		Project:     proposal.ProjectView{ProjectName: "Lofts"},
		Delivery:    delivery.Estimate{MinDays: 7, MaxDays: 9, Calculated: true},
		Pricing: proposal.Pricing{
			Raw:      quote.Totals{TotalGross: 1071},
			Discount: &proposal.DiscountView{Type: quote.DiscountPercentage, Value: 10},
		},
		Images: []proposal.ImageMeta{{Title: "Süd", ImageData: "aGVsbG8="}},
	}

	p := NewProposal(record, "4711")

	if p.DeliveryTimeMin != 7 || p.DeliveryTimeMax != 9 {
		t.Fatalf("delivery got %d-%d, want 7-9", p.DeliveryTimeMin, p.DeliveryTimeMax)
	}
	if p.TotalPrice != 1071 {
		t.Fatalf("total got %v, want 1071", p.TotalPrice)
	}
	if p.DiscountType != "percentage" || p.DiscountValue != 10 {
		t.Fatalf("discount got %s/%v", p.DiscountType, p.DiscountValue)
	}
	if len(p.Images) != 1 || p.Images[0].Title != "Süd" {
		t.Fatalf("images got %+v", p.Images)
	}
	if p.Record.Images[0].ImageData != "" {
		t.Fatalf("stored record kept inline image data")
	}
	if record.Images[0].ImageData == "" {
		t.Fatalf("caller record was modified")
	}
}
