package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/exposeprofi/proposals/internal/catalog"
	"github.com/exposeprofi/proposals/internal/description"
	"github.com/exposeprofi/proposals/internal/drafts"
	"github.com/exposeprofi/proposals/internal/logging"
	"github.com/exposeprofi/proposals/internal/pricing"
	"github.com/exposeprofi/proposals/internal/quote"
)

type BulletOp string

const (
	BulletOpAdd      BulletOp = "add"
	BulletOpEdit     BulletOp = "edit"
	BulletOpAddChild BulletOp = "add_child"
)

// BulletEdit is one edit of a description bullet. Path is a dotted index path
// such as "0.2"; it is ignored for BulletOpAdd.
type BulletEdit struct {
	Op   BulletOp `json:"op" validate:"required,oneof=add edit add_child"`
	Path string   `json:"path"`
	Text string   `json:"text" validate:"required,max=1000"`
}

type ServiceUpdate struct {
	Selected        bool               `json:"selected"`
	Quantity        int                `json:"quantity" validate:"gte=0,lte=1000"`
	Parameters      pricing.Parameters `json:"parameters"`
	CustomUnitPrice quote.Amount       `json:"customUnitPrice" validate:"gte=0,lte=1000000"`
}

// DraftView is a draft with its effective descriptions and live calculation.
type DraftView struct {
	Draft        *quote.Draft                  `json:"draft"`
	Descriptions map[string][]description.Node `json:"descriptions"`
	Preview      *QuotePreview                 `json:"preview"`
}

type DraftService struct {
	store   drafts.Store
	catalog *catalog.Catalog
	quotes  *QuoteService
	ttl     time.Duration
	logger  *slog.Logger
}

func NewDraftService(store drafts.Store, c *catalog.Catalog, quotes *QuoteService, ttl time.Duration, logger *slog.Logger) *DraftService {
	return &DraftService{store: store, catalog: c, quotes: quotes, ttl: ttl, logger: logger}
}

func (s *DraftService) Create(ctx context.Context) (*DraftView, error) {
	now := time.Now().UTC()
	draft := &quote.Draft{
		ID:        uuid.NewString(),
		Services:  []quote.SelectedService{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Set(ctx, draft, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to store draft: %w", err)
	}
	loggerFromContext(ctx, s.logger).Info("draft created", "draft_id", draft.ID)
	return s.view(draft)
}

func (s *DraftService) Get(ctx context.Context, id string) (*DraftView, error) {
	draft, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(draft)
}

// Load returns the stored draft itself, without the calculated view.
func (s *DraftService) Load(ctx context.Context, id string) (*quote.Draft, error) {
	return s.store.Get(ctx, id)
}

func (s *DraftService) Discard(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *DraftService) UpdateService(ctx context.Context, id, serviceID string, update ServiceUpdate) (*DraftView, error) {
	if err := validateInput(update); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(session *quote.Session) error {
		return session.SetService(serviceID, update.Selected, update.Quantity, update.Parameters, update.CustomUnitPrice.Float())
	})
}

// SetDiscount replaces the draft discount; a nil discount removes it.
func (s *DraftService) SetDiscount(ctx context.Context, id string, discount *quote.Discount) (*DraftView, error) {
	if discount != nil {
		if err := validateInput(discount); err != nil {
			return nil, err
		}
	}
	return s.mutate(ctx, id, func(session *quote.Session) error {
		session.SetDiscount(discount)
		return nil
	})
}

func (s *DraftService) EditDefaultBullet(ctx context.Context, id, serviceID string, edit BulletEdit) (*DraftView, error) {
	if err := validateInput(edit); err != nil {
		return nil, err
	}
	path, err := description.ParsePath(edit.Path)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(session *quote.Session) error {
		switch edit.Op {
		case BulletOpEdit:
			return session.EditDefaultBullet(serviceID, path, edit.Text)
		case BulletOpAddChild:
			return session.AddDefaultSubBullet(serviceID, path, edit.Text)
		default:
			return fmt.Errorf("%w: default bullets support edit and add_child", ErrInvalidInput)
		}
	})
}

func (s *DraftService) EditCustomBullet(ctx context.Context, id, serviceID string, edit BulletEdit) (*DraftView, error) {
	if err := validateInput(edit); err != nil {
		return nil, err
	}
	var path description.Path
	if edit.Op != BulletOpAdd {
		parsed, err := description.ParsePath(edit.Path)
		if err != nil {
			return nil, err
		}
		path = parsed
	}
	return s.mutate(ctx, id, func(session *quote.Session) error {
		switch edit.Op {
		case BulletOpAdd:
			_, err := session.AddCustomBullet(serviceID, edit.Text)
			return err
		case BulletOpEdit:
			return session.EditCustomBullet(serviceID, path, edit.Text)
		default:
			_, err := session.AddCustomSubBullet(serviceID, path, edit.Text)
			return err
		}
	})
}

func (s *DraftService) mutate(ctx context.Context, id string, apply func(*quote.Session) error) (*DraftView, error) {
	draft, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	_, logger := logging.With(ctx, s.logger, "draft_id", id)
	session := quote.NewSession(s.catalog, draft, logger)
	if err := apply(session); err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, session.Draft(), s.ttl); err != nil {
		return nil, fmt.Errorf("failed to store draft: %w", err)
	}
	return s.view(session.Draft())
}

func (s *DraftService) view(draft *quote.Draft) (*DraftView, error) {
	preview, err := s.quotes.Preview(QuoteInput{Services: draft.Services, Discount: draft.Discount})
	if err != nil {
		return nil, err
	}
	descriptions := make(map[string][]description.Node, len(draft.Services))
	for _, svc := range draft.Services {
		descriptions[svc.ServiceID] = quote.EffectiveDescription(s.catalog, draft.Services, svc.ServiceID, s.logger)
	}
	return &DraftView{Draft: draft, Descriptions: descriptions, Preview: preview}, nil
}
