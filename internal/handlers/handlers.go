package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/exposeprofi/proposals/internal/catalog"
	"github.com/exposeprofi/proposals/internal/config"
	"github.com/exposeprofi/proposals/internal/logging"
	"github.com/exposeprofi/proposals/internal/services"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers provides the HTTP handlers for the proposal API.
type Handlers struct {
	config    *config.Config
	db        Pinger
	catalog   *catalog.Catalog
	quotes    *services.QuoteService
	drafts    *services.DraftService
	proposals *services.ProposalService
	clients   *services.ClientService
	logger    *slog.Logger
}

type Dependencies struct {
	Config          *config.Config
	DB              Pinger
	Catalog         *catalog.Catalog
	QuoteService    *services.QuoteService
	DraftService    *services.DraftService
	ProposalService *services.ProposalService
	ClientService   *services.ClientService
	Logger          *slog.Logger
}

func New(deps Dependencies) (*Handlers, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if deps.Config == nil {
		return nil, fmt.Errorf("handlers dependencies: config is required")
	}
	if deps.Catalog == nil {
		return nil, fmt.Errorf("handlers dependencies: catalog is required")
	}
	if deps.QuoteService == nil {
		return nil, fmt.Errorf("handlers dependencies: quoteService is required")
	}
	if deps.DraftService == nil {
		return nil, fmt.Errorf("handlers dependencies: draftService is required")
	}
	if deps.ProposalService == nil {
		return nil, fmt.Errorf("handlers dependencies: proposalService is required")
	}
	if deps.ClientService == nil {
		return nil, fmt.Errorf("handlers dependencies: clientService is required")
	}

	return &Handlers{
		config:    deps.Config,
		db:        deps.DB,
		catalog:   deps.Catalog,
		quotes:    deps.QuoteService,
		drafts:    deps.DraftService,
		proposals: deps.ProposalService,
		clients:   deps.ClientService,
		logger:    logger.With("component", "handlers"),
	}, nil
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.loggerFromContext(ctx)

	// memory repositories have nothing to ping
	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			logger.Error("database health check failed", "error", err)
			http.Error(w, "Database unhealthy", http.StatusServiceUnavailable)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		logger.Error("failed to encode health response", "error", err)
	}
}

func (h *Handlers) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, h.logger)
}
