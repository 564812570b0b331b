package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/exposeprofi/proposals/internal/db"
	"github.com/exposeprofi/proposals/internal/logging"
	"github.com/exposeprofi/proposals/internal/models"
	"github.com/exposeprofi/proposals/internal/notify"
	"github.com/exposeprofi/proposals/internal/proposal"
	"github.com/exposeprofi/proposals/internal/quote"
)

const notifyTimeout = 30 * time.Second

type ProposalRepository interface {
	Create(ctx context.Context, p *db.Proposal) error
	GetByOfferNumber(ctx context.Context, offerNumber string) (*db.Proposal, error)
}

// CreateProposalInput is the request to turn a selection into a proposal. When
// DraftID is set, services and discount come from the stored draft.
type CreateProposalInput struct {
	DraftID   string                  `json:"draftId,omitempty"`
	Client    *proposal.ClientInfo    `json:"clientInfo"`
	Project   proposal.ProjectInfo    `json:"projectInfo"`
	Services  []quote.SelectedService `json:"services" validate:"dive"`
	Discount  *quote.Discount         `json:"discount,omitempty"`
	Images    []proposal.ImageMeta    `json:"images" validate:"max=20"`
	Signature proposal.Signature      `json:"signature"`
}

type CreateProposalResult struct {
	OfferNumber  string           `json:"offerNumber"`
	FileName     string           `json:"fileName"`
	ClientFolder string           `json:"clientFolder"`
	TotalGross   string           `json:"totalGrossPrice"`
	Record       *proposal.Record `json:"record"`
}

type ProposalService struct {
	assembler        *proposal.Assembler
	store            ProposalRepository
	clients          *ClientService
	drafts           *DraftService
	notifier         notify.Notifier
	defaultSignature string
	logger           *slog.Logger
	wg               sync.WaitGroup
}

type ProposalServiceDeps struct {
	Assembler        *proposal.Assembler
	Store            ProposalRepository
	Clients          *ClientService
	Drafts           *DraftService
	Notifier         notify.Notifier
	DefaultSignature string
	Logger           *slog.Logger
}

func NewProposalService(deps ProposalServiceDeps) *ProposalService {
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &ProposalService{
		assembler:        deps.Assembler,
		store:            deps.Store,
		clients:          deps.Clients,
		drafts:           deps.Drafts,
		notifier:         notifier,
		defaultSignature: deps.DefaultSignature,
		logger:           deps.Logger,
	}
}

func (s *ProposalService) Create(ctx context.Context, input CreateProposalInput) (*CreateProposalResult, error) {
	logger := loggerFromContext(ctx, s.logger)

	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Client == nil || strings.TrimSpace(input.Client.CompanyName) == "" {
		return nil, ErrClientRequired
	}

	services, discount := input.Services, input.Discount
	if input.DraftID != "" && s.drafts != nil {
		draft, err := s.drafts.Load(ctx, input.DraftID)
		if err != nil {
			return nil, err
		}
		services, discount = draft.Services, draft.Discount
	}
	services = quote.SanitizeServices(services)
	if !anySelected(services) {
		return nil, ErrNoServicesSelected
	}

	client := *input.Client
	clientID := strings.TrimSpace(client.ClientNumber)
	if clientID != "" && s.clients != nil {
		known, err := s.clients.Lookup(ctx, clientID)
		switch {
		case err == nil:
			if known.CompanyName != "" {
				client.CompanyName = known.CompanyName
			}
			clientID = known.ClientID
		case errors.Is(err, db.ErrNotFound):
			logger.Info("client number not on record", "client_number", clientID)
		default:
			logger.Warn("client lookup failed", "client_number", clientID, "error", err)
		}
	}

	signature := input.Signature
	if strings.TrimSpace(signature.SignatureName) == "" {
		signature.SignatureName = s.defaultSignature
	}

	offerNumber := proposal.NewOfferNumber(time.Now())
	ctx, logger = logging.With(ctx, s.logger, "offer_number", offerNumber)

	record := s.assembler.Assemble(proposal.Input{
		OfferNumber: offerNumber,
		Client:      client,
		Project:     input.Project,
		Services:    services,
		Discount:    discount,
		Images:      input.Images,
		Signature:   signature,
	})

	if err := s.store.Create(ctx, models.NewProposal(record, clientID)); err != nil {
		return nil, fmt.Errorf("failed to store proposal: %w", err)
	}
	logger.Info("proposal created",
		"client_folder", record.ClientFolder,
		"total_gross", record.Pricing.TotalGross,
	)

	s.notify(ctx, record.Summary())

	return &CreateProposalResult{
		OfferNumber:  record.OfferNumber,
		FileName:     record.FileName,
		ClientFolder: record.ClientFolder,
		TotalGross:   record.Pricing.TotalGross,
		Record:       record,
	}, nil
}

func (s *ProposalService) Get(ctx context.Context, offerNumber string) (*db.Proposal, error) {
	offerNumber = strings.TrimSpace(offerNumber)
	if offerNumber == "" {
		return nil, ErrInvalidInput
	}
	return s.store.GetByOfferNumber(ctx, offerNumber)
}

// Wait blocks until pending notifications have finished.
func (s *ProposalService) Wait() {
	s.wg.Wait()
}

func (s *ProposalService) notify(ctx context.Context, summary proposal.Summary) {
	logger := loggerFromContext(ctx, s.logger)
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		if err := s.notifier.ProposalCreated(notifyCtx, summary); err != nil {
			logger.Error("proposal notification failed", "error", err)
		}
	}()
}

func anySelected(services []quote.SelectedService) bool {
	for _, svc := range services {
		if svc.Counts() {
			return true
		}
	}
	return false
}
