// Package proposal assembles the self-describing document record handed to the
// renderer, the proposal store and the notifier.
package proposal

import (
	"github.com/exposeprofi/proposals/internal/delivery"
	"github.com/exposeprofi/proposals/internal/description"
	"github.com/exposeprofi/proposals/internal/pricing"
	"github.com/exposeprofi/proposals/internal/quote"
)

const (
	DateLayout       = "02.01.2006"
	DefaultCountry   = "Deutschland"
	DefaultValidDays = 30
)

type ClientInfo struct {
	ClientNumber string `json:"clientNumber,omitempty" validate:"omitempty,max=64"`
	CompanyName  string `json:"companyName" validate:"required,max=200"`
	Street       string `json:"street,omitempty" validate:"max=200"`
	PostalCode   string `json:"postalCode,omitempty" validate:"max=20"`
	City         string `json:"city,omitempty" validate:"max=100"`
	Country      string `json:"country,omitempty" validate:"max=100"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
}

// ProjectInfo is the project metadata entered with the proposal. Dates use the
// German DD.MM.YYYY form; an empty date means today.
type ProjectInfo struct {
	ProjectNumber   string `json:"projectNumber,omitempty" validate:"max=64"`
	ProjectName     string `json:"projectName,omitempty" validate:"max=200"`
	ProjectType     string `json:"projectType,omitempty" validate:"max=100"`
	Date            string `json:"date,omitempty"`
	OfferValidUntil string `json:"offerValidUntil,omitempty"`
}

type ImageMeta struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	FileType    string `json:"fileType,omitempty"`
	ImageData   string `json:"imageData,omitempty"`
}

type Signature struct {
	SignatureName string `json:"signatureName"`
}

// Input is everything the assembler needs for one proposal.
type Input struct {
	OfferNumber string
	Client      ClientInfo
	Project     ProjectInfo
	Services    []quote.SelectedService
	Discount    *quote.Discount
	Images      []ImageMeta
	Signature   Signature
}

// LineItem is one priced service as it appears in the document.
type LineItem struct {
	ServiceID          string             `json:"serviceId"`
	Name               string             `json:"name"`
	Quantity           int                `json:"quantity"`
	UnitPrice          float64            `json:"unitPrice"`
	TotalPrice         float64            `json:"totalPrice"`
	FormattedUnitPrice string             `json:"formattedUnitPrice"`
	FormattedTotal     string             `json:"formattedTotalPrice"`
	PriceIncomplete    bool               `json:"priceIncomplete,omitempty"`
	PriceSource        pricing.Source     `json:"priceSource"`
	Description        []description.Node `json:"description"`
}

type ProjectView struct {
	ProjectNumber   string `json:"projectNumber,omitempty"`
	ProjectName     string `json:"projectName,omitempty"`
	ProjectType     string `json:"projectType,omitempty"`
	Date            string `json:"date"`
	MM              string `json:"MM"`
	DD              string `json:"DD"`
	OfferValidUntil string `json:"offerValidUntil"`
	DeliveryDays    string `json:"deliveryDays"`
}

type DiscountView struct {
	Type            quote.DiscountType `json:"type"`
	Value           float64            `json:"value"`
	Amount          float64            `json:"amount"`
	FormattedAmount string             `json:"formattedAmount"`
	Description     string             `json:"description,omitempty"`
}

// Pricing carries both the unrounded totals and their document form.
type Pricing struct {
	quote.FormattedTotals
	Raw      quote.Totals  `json:"raw"`
	Discount *DiscountView `json:"discount,omitempty"`
}

// Record is the document data of one proposal.
type Record struct {
	OfferNumber  string            `json:"offerNumber"`
	FileName     string            `json:"fileName"`
	ClientFolder string            `json:"clientFolder"`
	Currency     string            `json:"currency"`
	Client       ClientInfo        `json:"clientInfo"`
	Project      ProjectView       `json:"projectInfo"`
	Delivery     delivery.Estimate `json:"delivery"`
	Services     []LineItem        `json:"services"`
	Pricing      Pricing           `json:"pricing"`
	Images       []ImageMeta       `json:"images"`
	Signature    Signature         `json:"signature"`
}
