package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/exposeprofi/proposals/internal/description"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// ServiceDescriptor is the immutable catalog entry for one service.
type ServiceDescriptor struct {
	ID           string
	Name         string
	DefaultPrice *float64
	PricingTiers []PricingTier
	Pricing      PricingRule

	defaultDescription []description.Node
}

// DefaultDescription returns a deep copy of the catalog default bullets.
func (d ServiceDescriptor) DefaultDescription() []description.Node {
	return description.CloneTree(d.defaultDescription)
}

// Catalog is the loaded, validated service table. It is never mutated after New.
type Catalog struct {
	currency      string
	order         []string
	services      map[string]ServiceDescriptor
	deliveryRules map[string]DeliveryRule
}

// New validates file and builds a catalog that owns copies of all its data.
func New(file *File) (*Catalog, error) {
	if err := NewValidator().Validate(file); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	currency := file.Currency
	if currency == "" {
		currency = "EUR"
	}

	c := &Catalog{
		currency:      currency,
		order:         make([]string, 0, len(file.Services)),
		services:      make(map[string]ServiceDescriptor, len(file.Services)),
		deliveryRules: make(map[string]DeliveryRule, len(file.DeliveryRules)),
	}

	for _, svc := range file.Services {
		c.order = append(c.order, svc.ID)
		c.services[svc.ID] = newDescriptor(svc)
	}
	for id, rule := range file.DeliveryRules {
		c.deliveryRules[id] = rule
	}

	return c, nil
}

// Load parses and validates the catalog at path, or the embedded default catalog
// when path is empty.
func Load(path string) (*Catalog, error) {
	content := defaultCatalogYAML
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
		content = data
	}

	file, err := NewParser().Parse(content)
	if err != nil {
		return nil, err
	}
	return New(file)
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Load("")
}

func (c *Catalog) Currency() string {
	return c.currency
}

// Service returns the descriptor for id.
func (c *Catalog) Service(id string) (ServiceDescriptor, bool) {
	svc, ok := c.services[id]
	if !ok {
		return ServiceDescriptor{}, false
	}
	return svc.copy(), true
}

// Services returns all descriptors in catalog file order.
func (c *Catalog) Services() []ServiceDescriptor {
	out := make([]ServiceDescriptor, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.services[id].copy())
	}
	return out
}

// DefaultDescription returns a copy of the default bullets for id, or nil.
func (c *Catalog) DefaultDescription(id string) []description.Node {
	svc, ok := c.services[id]
	if !ok {
		return nil
	}
	return svc.DefaultDescription()
}

// DeliveryRules returns a copy of the delivery rule table.
func (c *Catalog) DeliveryRules() map[string]DeliveryRule {
	out := make(map[string]DeliveryRule, len(c.deliveryRules))
	for id, rule := range c.deliveryRules {
		out[id] = rule
	}
	return out
}

func newDescriptor(svc ServiceConfig) ServiceDescriptor {
	d := ServiceDescriptor{
		ID:                 svc.ID,
		Name:               svc.Name,
		DefaultPrice:       svc.DefaultPrice,
		PricingTiers:       svc.PricingTiers,
		Pricing:            svc.Pricing,
		defaultDescription: svc.Description,
	}
	d = d.copy()
	if d.defaultDescription == nil {
		d.defaultDescription = []description.Node{}
	}
	return d
}

func (d ServiceDescriptor) copy() ServiceDescriptor {
	out := ServiceDescriptor{
		ID:                 d.ID,
		Name:               d.Name,
		Pricing:            PricingRule{Strategy: d.Pricing.Strategy, Parameter: d.Pricing.Parameter},
		defaultDescription: description.CloneTree(d.defaultDescription),
	}
	if d.DefaultPrice != nil {
		price := *d.DefaultPrice
		out.DefaultPrice = &price
	}
	if d.PricingTiers != nil {
		out.PricingTiers = append([]PricingTier(nil), d.PricingTiers...)
	}
	if d.Pricing.UnitPrice != nil {
		price := *d.Pricing.UnitPrice
		out.Pricing.UnitPrice = &price
	}
	if d.Pricing.Matrix != nil {
		out.Pricing.Matrix = make(map[string][]float64, len(d.Pricing.Matrix))
		for key, row := range d.Pricing.Matrix {
			out.Pricing.Matrix[key] = append([]float64(nil), row...)
		}
	}
	if d.Pricing.Options != nil {
		out.Pricing.Options = make(map[string]float64, len(d.Pricing.Options))
		for key, price := range d.Pricing.Options {
			out.Pricing.Options[key] = price
		}
	}
	return out
}
