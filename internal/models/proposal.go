package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/exposeprofi/proposals/internal/proposal"
)

type ImageRef struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Proposal is a stored proposal: the flattened columns used for search and
// reporting plus the full document record.
type Proposal struct {
	ID              uuid.UUID        `json:"id"`
	ClientID        string           `json:"client_id,omitempty"`
	CompanyName     string           `json:"company_name"`
	Street          string           `json:"street_no"`
	PostalCode      string           `json:"postal_code"`
	City            string           `json:"city"`
	Country         string           `json:"country"`
	ProjectNumber   string           `json:"project_number,omitempty"`
	ProjectName     string           `json:"project_name,omitempty"`
	ProjectType     string           `json:"project_type,omitempty"`
	OfferNumber     string           `json:"offer_number"`
	DeliveryTimeMin int              `json:"delivery_time_min,omitempty"`
	DeliveryTimeMax int              `json:"delivery_time_max,omitempty"`
	DiscountType    string           `json:"discount_type,omitempty"`
	DiscountValue   float64          `json:"discount_value,omitempty"`
	Currency        string           `json:"currency"`
	TotalPrice      float64          `json:"total_price"`
	Images          []ImageRef       `json:"image_urls"`
	DocumentURL     string           `json:"document_url,omitempty"`
	Record          *proposal.Record `json:"record"`
	CreatedAt       time.Time        `json:"created_at"`
}

// NewProposal flattens record into a storable proposal. Inline image data is
// dropped; only titles and descriptions are kept.
func NewProposal(record *proposal.Record, clientID string) *Proposal {
	p := &Proposal{
		ClientID:        clientID,
		CompanyName:     record.Client.CompanyName,
		Street:          record.Client.Street,
		PostalCode:      record.Client.PostalCode,
		City:            record.Client.City,
		Country:         record.Client.Country,
		ProjectNumber:   record.Project.ProjectNumber,
		ProjectName:     record.Project.ProjectName,
		ProjectType:     record.Project.ProjectType,
		OfferNumber:     record.OfferNumber,
		DeliveryTimeMin: record.Delivery.MinDays,
		DeliveryTimeMax: record.Delivery.MaxDays,
		Currency:        record.Currency,
		TotalPrice:      record.Pricing.Raw.TotalGross,
		Images:          make([]ImageRef, 0, len(record.Images)),
	}
	if d := record.Pricing.Discount; d != nil {
		p.DiscountType = string(d.Type)
		p.DiscountValue = d.Value
	}
	for _, img := range record.Images {
		p.Images = append(p.Images, ImageRef{Title: img.Title, Description: img.Description})
	}

	stored := *record
	stored.Images = make([]proposal.ImageMeta, len(record.Images))
	for i, img := range record.Images {
		img.ImageData = ""
		stored.Images[i] = img
	}
	p.Record = &stored
	return p
}
