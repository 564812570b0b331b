package services

import (
	"log/slog"

	"github.com/exposeprofi/proposals/internal/catalog"
	"github.com/exposeprofi/proposals/internal/delivery"
	"github.com/exposeprofi/proposals/internal/pricing"
	"github.com/exposeprofi/proposals/internal/quote"
)

type QuoteInput struct {
	Services []quote.SelectedService `json:"services" validate:"dive"`
	Discount *quote.Discount         `json:"discount,omitempty"`
}

type PreviewLine struct {
	ServiceID          string         `json:"serviceId"`
	Name               string         `json:"name"`
	Quantity           int            `json:"quantity"`
	UnitPrice          float64        `json:"unitPrice"`
	TotalPrice         float64        `json:"totalPrice"`
	FormattedUnitPrice string         `json:"formattedUnitPrice"`
	FormattedTotal     string         `json:"formattedTotalPrice"`
	Complete           bool           `json:"complete"`
	Source             pricing.Source `json:"source"`
}

// QuotePreview is the live calculation shown while a quote is edited.
type QuotePreview struct {
	Lines        []PreviewLine         `json:"lines"`
	Totals       quote.Totals          `json:"totals"`
	Formatted    quote.FormattedTotals `json:"formatted"`
	Delivery     delivery.Estimate     `json:"delivery"`
	DeliveryDays string                `json:"deliveryDays"`
	Incomplete   []string              `json:"incomplete,omitempty"`
}

type QuoteService struct {
	catalog    *catalog.Catalog
	aggregator *quote.Aggregator
	estimator  *delivery.Estimator
	logger     *slog.Logger
}

func NewQuoteService(c *catalog.Catalog, engine *pricing.Engine, estimator *delivery.Estimator, logger *slog.Logger) *QuoteService {
	return &QuoteService{
		catalog:    c,
		aggregator: quote.NewAggregator(engine),
		estimator:  estimator,
		logger:     logger,
	}
}

func (s *QuoteService) Preview(input QuoteInput) (*QuotePreview, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	lines := s.aggregator.Lines(quote.SanitizeServices(input.Services))
	preview := &QuotePreview{Lines: make([]PreviewLine, 0, len(lines))}
	for _, line := range lines {
		name := line.Service.ServiceID
		if svc, ok := s.catalog.Service(line.Service.ServiceID); ok {
			name = svc.Name
		}
		preview.Lines = append(preview.Lines, PreviewLine{
			ServiceID:          line.Service.ServiceID,
			Name:               name,
			Quantity:           line.Service.Quantity,
			UnitPrice:          line.Resolution.UnitPrice,
			TotalPrice:         line.Total(),
			FormattedUnitPrice: quote.FormatEUR(line.Resolution.UnitPrice),
			FormattedTotal:     quote.FormatEUR(line.Total()),
			Complete:           line.Resolution.Complete,
			Source:             line.Resolution.Source,
		})
		if !line.Resolution.Complete {
			preview.Incomplete = append(preview.Incomplete, line.Service.ServiceID)
		}
	}

	preview.Totals = quote.TotalsForLines(lines, input.Discount)
	preview.Formatted = preview.Totals.Formatted()
	preview.Delivery = s.estimator.Estimate(quote.DeliveryLines(input.Services))
	preview.DeliveryDays = preview.Delivery.String()
	return preview, nil
}
