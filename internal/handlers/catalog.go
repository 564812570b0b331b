package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/exposeprofi/proposals/internal/catalog"
	"github.com/exposeprofi/proposals/internal/description"
	"github.com/exposeprofi/proposals/internal/quote"
)

type catalogService struct {
	ID                    string                `json:"id"`
	Name                  string                `json:"name"`
	DefaultPrice          *float64              `json:"defaultPrice,omitempty"`
	FormattedDefaultPrice string                `json:"formattedDefaultPrice,omitempty"`
	PricingTiers          []catalog.PricingTier `json:"pricingTiers,omitempty"`
	Pricing               catalog.PricingRule   `json:"pricing"`
	DefaultDescription    []description.Node    `json:"defaultDescription"`
	Delivery              *catalog.DeliveryRule `json:"delivery,omitempty"`
}

type catalogResponse struct {
	Currency string           `json:"currency"`
	Services []catalogService `json:"services"`
}

func (h *Handlers) newCatalogService(svc catalog.ServiceDescriptor, rules map[string]catalog.DeliveryRule) catalogService {
	out := catalogService{
		ID:                 svc.ID,
		Name:               svc.Name,
		DefaultPrice:       svc.DefaultPrice,
		PricingTiers:       svc.PricingTiers,
		Pricing:            svc.Pricing,
		DefaultDescription: svc.DefaultDescription(),
	}
	if svc.DefaultPrice != nil {
		out.FormattedDefaultPrice = quote.FormatEUR(*svc.DefaultPrice)
	}
	if rule, ok := rules[svc.ID]; ok {
		out.Delivery = &rule
	}
	return out
}

func (h *Handlers) ListCatalog(w http.ResponseWriter, r *http.Request) {
	rules := h.catalog.DeliveryRules()
	descriptors := h.catalog.Services()

	resp := catalogResponse{
		Currency: h.catalog.Currency(),
		Services: make([]catalogService, 0, len(descriptors)),
	}
	for _, svc := range descriptors {
		resp.Services = append(resp.Services, h.newCatalogService(svc, rules))
	}
	h.writeJSON(w, r, http.StatusOK, resp)
}

func (h *Handlers) GetCatalogService(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceID"]
	svc, ok := h.catalog.Service(serviceID)
	if !ok {
		h.writeError(w, r, fmt.Errorf("%w: %s", quote.ErrUnknownService, serviceID))
		return
	}
	h.writeJSON(w, r, http.StatusOK, h.newCatalogService(svc, h.catalog.DeliveryRules()))
}
