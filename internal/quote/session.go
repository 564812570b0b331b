package quote

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/exposeprofi/proposals/internal/catalog"
	"github.com/exposeprofi/proposals/internal/description"
	"github.com/exposeprofi/proposals/internal/pricing"
)

// Draft is the editable state of one quote: what is selected, how it is described,
// and the discount. It is owned by the caller and serialised as-is by draft stores.
type Draft struct {
	ID        string            `json:"id"`
	Services  []SelectedService `json:"services"`
	Discount  *Discount         `json:"discount,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	out := *d
	out.Services = make([]SelectedService, len(d.Services))
	for i, svc := range d.Services {
		out.Services[i] = svc.Clone()
	}
	if d.Discount != nil {
		discount := *d.Discount
		out.Discount = &discount
	}
	return &out
}

// Session applies user edits to a draft against an injected catalog.
type Session struct {
	catalog *catalog.Catalog
	draft   *Draft
	logger  *slog.Logger
}

func NewSession(c *catalog.Catalog, draft *Draft, logger *slog.Logger) *Session {
	if draft == nil {
		draft = &Draft{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{catalog: c, draft: draft, logger: logger}
}

func (s *Session) Draft() *Draft {
	return s.draft
}

// Service returns the draft entry for serviceID, creating an unselected entry for
// a known catalog service on first access.
func (s *Session) Service(serviceID string) (*SelectedService, error) {
	for i := range s.draft.Services {
		if s.draft.Services[i].ServiceID == serviceID {
			return &s.draft.Services[i], nil
		}
	}
	if _, ok := s.catalog.Service(serviceID); !ok {
		s.logger.Warn("edit for unknown service", "service_id", serviceID)
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, serviceID)
	}
	s.draft.Services = append(s.draft.Services, SelectedService{ServiceID: serviceID})
	return &s.draft.Services[len(s.draft.Services)-1], nil
}

// SetService updates selection, quantity and pricing inputs of a service.
func (s *Session) SetService(serviceID string, selected bool, quantity int, params pricing.Parameters, customUnitPrice float64) error {
	svc, err := s.Service(serviceID)
	if err != nil {
		return err
	}
	if quantity < 0 {
		quantity = 0
	}
	svc.Selected = selected
	svc.Quantity = quantity
	svc.Parameters = params
	svc.CustomUnitPrice = Amount(customUnitPrice)
	s.touch()
	return nil
}

// SetDiscount replaces the discount; nil removes it.
func (s *Session) SetDiscount(d *Discount) {
	if d != nil {
		d.Description = description.CleanText(d.Description)
	}
	s.draft.Discount = d
	s.touch()
}

func (s *Session) EditDefaultBullet(serviceID string, path description.Path, text string) error {
	svc, err := s.Service(serviceID)
	if err != nil {
		return err
	}
	if err := svc.EditDefault(s.catalog.DefaultDescription(serviceID), path, description.CleanText(text)); err != nil {
		return err
	}
	s.touch()
	return nil
}

func (s *Session) AddDefaultSubBullet(serviceID string, path description.Path, text string) error {
	svc, err := s.Service(serviceID)
	if err != nil {
		return err
	}
	if err := svc.AddDefaultChild(s.catalog.DefaultDescription(serviceID), path, description.CleanText(text)); err != nil {
		return err
	}
	s.touch()
	return nil
}

func (s *Session) EditCustomBullet(serviceID string, path description.Path, text string) error {
	svc, err := s.Service(serviceID)
	if err != nil {
		return err
	}
	if err := svc.EditCustom(path, description.CleanText(text)); err != nil {
		return err
	}
	s.touch()
	return nil
}

// AddCustomBullet appends a top-level custom bullet and returns its index.
func (s *Session) AddCustomBullet(serviceID string, text string) (int, error) {
	svc, err := s.Service(serviceID)
	if err != nil {
		return 0, err
	}
	idx := svc.AddCustom(description.CleanText(text))
	s.touch()
	return idx, nil
}

func (s *Session) AddCustomSubBullet(serviceID string, path description.Path, text string) (int, error) {
	svc, err := s.Service(serviceID)
	if err != nil {
		return 0, err
	}
	idx, err := svc.AddCustomChild(path, description.CleanText(text))
	if err != nil {
		return 0, err
	}
	s.touch()
	return idx, nil
}

// EffectiveDescription returns the description that goes into the document. An
// unknown service yields an empty description.
func (s *Session) EffectiveDescription(serviceID string) []description.Node {
	return EffectiveDescription(s.catalog, s.draft.Services, serviceID, s.logger)
}

// EffectiveDescription resolves the description of serviceID within services.
func EffectiveDescription(c *catalog.Catalog, services []SelectedService, serviceID string, logger *slog.Logger) []description.Node {
	for _, svc := range services {
		if svc.ServiceID == serviceID {
			return ServiceDescription(c, svc, logger)
		}
	}
	return ServiceDescription(c, SelectedService{ServiceID: serviceID}, logger)
}

// ServiceDescription resolves the description of one selected service from its
// own layer.
func ServiceDescription(c *catalog.Catalog, svc SelectedService, logger *slog.Logger) []description.Node {
	if _, ok := c.Service(svc.ServiceID); !ok {
		if logger != nil {
			logger.Warn("description requested for unknown service", "service_id", svc.ServiceID)
		}
		return []description.Node{}
	}
	return svc.Effective(c.DefaultDescription(svc.ServiceID))
}

func (s *Session) touch() {
	s.draft.UpdatedAt = time.Now().UTC()
}
