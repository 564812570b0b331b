package proposal

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/exposeprofi/proposals/internal/catalog"
	"github.com/exposeprofi/proposals/internal/delivery"
	"github.com/exposeprofi/proposals/internal/description"
	"github.com/exposeprofi/proposals/internal/pricing"
	"github.com/exposeprofi/proposals/internal/quote"
)

// Assembler merges priced lines, descriptions, totals and delivery time into one
// Record. It performs no I/O.
type Assembler struct {
	catalog    *catalog.Catalog
	aggregator *quote.Aggregator
	estimator  *delivery.Estimator
	logger     *slog.Logger
	now        func() time.Time
}

func NewAssembler(c *catalog.Catalog, engine *pricing.Engine, estimator *delivery.Estimator, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if estimator == nil {
		estimator = delivery.NewEstimator(c.DeliveryRules())
	}
	return &Assembler{
		catalog:    c,
		aggregator: quote.NewAggregator(engine),
		estimator:  estimator,
		logger:     logger,
		now:        time.Now,
	}
}

func (a *Assembler) Assemble(input Input) *Record {
	now := a.now()
	date := parseDate(input.Project.Date, now)
	validUntil := parseDate(input.Project.OfferValidUntil, date.AddDate(0, 0, DefaultValidDays))

	client := input.Client
	client.CompanyName = strings.TrimSpace(client.CompanyName)
	if strings.TrimSpace(client.Country) == "" {
		client.Country = DefaultCountry
	}

	lines := a.aggregator.Lines(input.Services)
	items := make([]LineItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, a.lineItem(line))
	}

	totals := quote.TotalsForLines(lines, input.Discount)
	estimate := a.estimator.Estimate(quote.DeliveryLines(input.Services))

	// only images that carry data reach the document
	images := make([]ImageMeta, 0, len(input.Images))
	for _, img := range input.Images {
		if img.ImageData == "" {
			continue
		}
		if img.FileType == "" {
			img.FileType = "image/png"
		}
		images = append(images, img)
	}

	record := &Record{
		OfferNumber:  input.OfferNumber,
		FileName:     FileName(date, client.CompanyName),
		ClientFolder: ClientFolder(client.ClientNumber, client.CompanyName, now),
		Currency:     a.currency(),
		Client:       client,
		Project: ProjectView{
			ProjectNumber:   input.Project.ProjectNumber,
			ProjectName:     input.Project.ProjectName,
			ProjectType:     input.Project.ProjectType,
			Date:            date.Format(DateLayout),
			MM:              date.Format("01"),
			DD:              date.Format("02"),
			OfferValidUntil: validUntil.Format(DateLayout),
			DeliveryDays:    estimate.String(),
		},
		Delivery: estimate,
		Services: items,
		Pricing: Pricing{
			FormattedTotals: totals.Formatted(),
			Raw:             totals,
			Discount:        discountView(input.Discount, totals),
		},
		Images:    images,
		Signature: input.Signature,
	}

	a.logger.Debug("assembled proposal",
		"offer_number", record.OfferNumber,
		"services", len(items),
		"total_gross", totals.TotalGross,
		"delivery", estimate.String())

	return record
}

func (a *Assembler) lineItem(line quote.Line) LineItem {
	svc := line.Service
	name := svc.ServiceID
	if descriptor, ok := a.catalog.Service(svc.ServiceID); ok {
		name = descriptor.Name
	}
	total := line.Total()
	return LineItem{
		ServiceID:          svc.ServiceID,
		Name:               name,
		Quantity:           svc.Quantity,
		UnitPrice:          line.Resolution.UnitPrice,
		TotalPrice:         total,
		FormattedUnitPrice: quote.FormatEUR(line.Resolution.UnitPrice),
		FormattedTotal:     quote.FormatEUR(total),
		PriceIncomplete:    !line.Resolution.Complete,
		PriceSource:        line.Resolution.Source,
		Description:        quote.ServiceDescription(a.catalog, svc, a.logger),
	}
}

func (a *Assembler) currency() string {
	if c := a.catalog.Currency(); c != "" {
		return c
	}
	return "EUR"
}

func discountView(d *quote.Discount, totals quote.Totals) *DiscountView {
	if d == nil {
		return nil
	}
	return &DiscountView{
		Type:            d.Type,
		Value:           d.Value.Float(),
		Amount:          totals.DiscountAmount,
		FormattedAmount: quote.FormatEUR(totals.DiscountAmount),
		Description:     d.Description,
	}
}

func parseDate(s string, fallback time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	for _, layout := range []string{DateLayout, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return fallback
}

// Lines returns the flattened description of an item, one indented line per bullet.
func (l LineItem) Lines() []string {
	return description.Flatten(l.Description)
}
