package quote

import (
	"github.com/exposeprofi/proposals/internal/delivery"
	"github.com/exposeprofi/proposals/internal/description"
	"github.com/exposeprofi/proposals/internal/pricing"
)

// SelectedService is one catalog service as configured by the user. The embedded
// description layer carries modifiedDefaults, customDescription and the patch log.
type SelectedService struct {
	ServiceID       string             `json:"serviceId" validate:"required,max=64"`
	Selected        bool               `json:"selected"`
	Quantity        int                `json:"quantity" validate:"gte=0,lte=1000"`
	Parameters      pricing.Parameters `json:"parameters"`
	CustomUnitPrice Amount             `json:"customUnitPrice,omitempty" validate:"gte=0,lte=1000000"`
	description.Layer
}

// Counts reports whether the service contributes to totals and the document.
func (s SelectedService) Counts() bool {
	return s.Selected && s.Quantity > 0
}

func (s SelectedService) Clone() SelectedService {
	out := s
	out.Layer = s.Layer.Clone()
	return out
}

// Sanitize cleans user-entered text and clamps a negative quantity to zero.
func (s *SelectedService) Sanitize() {
	if s.Quantity < 0 {
		s.Quantity = 0
	}
	s.Layer.Sanitize()
}

// SanitizeServices returns cleaned copies of services; the input is not modified.
func SanitizeServices(services []SelectedService) []SelectedService {
	out := make([]SelectedService, len(services))
	for i, svc := range services {
		out[i] = svc.Clone()
		out[i].Sanitize()
	}
	return out
}

// DeliveryLines maps counting services to estimator input.
func DeliveryLines(services []SelectedService) []delivery.Line {
	lines := make([]delivery.Line, 0, len(services))
	for _, svc := range services {
		if !svc.Counts() {
			continue
		}
		lines = append(lines, delivery.Line{ServiceID: svc.ServiceID, Quantity: svc.Quantity})
	}
	return lines
}
