package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/exposeprofi/proposals/internal/cache"
	"github.com/exposeprofi/proposals/internal/catalog"
	"github.com/exposeprofi/proposals/internal/config"
	"github.com/exposeprofi/proposals/internal/db"
	"github.com/exposeprofi/proposals/internal/delivery"
	"github.com/exposeprofi/proposals/internal/drafts"
	"github.com/exposeprofi/proposals/internal/email"
	"github.com/exposeprofi/proposals/internal/handlers"
	"github.com/exposeprofi/proposals/internal/logging"
	"github.com/exposeprofi/proposals/internal/notify"
	"github.com/exposeprofi/proposals/internal/pricing"
	"github.com/exposeprofi/proposals/internal/proposal"
	"github.com/exposeprofi/proposals/internal/services"
)

const clientCacheSize = 1024

type App struct {
	Config          *config.Config
	Logger          *slog.Logger
	DB              *pgxpool.Pool
	CacheProvider   cache.Provider
	DraftStore      drafts.Store
	ProposalService *services.ProposalService
	Handlers        *handlers.Handlers

	logCloser io.Closer
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, logCloser, err := logging.New(os.Stdout, logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	a := &App{Config: cfg, Logger: logger, logCloser: logCloser}

	if err := a.init(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init() error {
	cfg, logger := a.Config, a.Logger

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	svcCatalog, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load service catalog: %w", err)
	}
	logger.Info("service catalog loaded", "services", len(svcCatalog.Services()), "path", cfg.CatalogPath)

	engine, err := pricing.NewEngine(svcCatalog, pricing.DefaultRegistry(), logger.With("component", "pricing"))
	if err != nil {
		return fmt.Errorf("failed to initialize pricing engine: %w", err)
	}
	estimator := delivery.NewEstimator(svcCatalog.DeliveryRules())
	assembler := proposal.NewAssembler(svcCatalog, engine, estimator, logger.With("component", "assembler"))

	var (
		proposalStore services.ProposalRepository
		clientStore   services.ClientRepository
		pinger        handlers.Pinger
	)
	if cfg.DatabaseURL != "" {
		a.DB, err = db.Connect(startupCtx, cfg.DatabaseURL, logger.With("component", "db"))
		if err != nil {
			return err
		}
		if err := db.Migrate(startupCtx, a.DB); err != nil {
			return err
		}
		proposalStore = db.NewProposalStore(a.DB)
		clientStore = db.NewClientStore(a.DB)
		pinger = a.DB
	} else {
		logger.Warn("DATABASE_URL not set, proposals are kept in memory")
		proposalStore = db.NewMemoryProposalStore()
		clientStore = db.NewMemoryClientStore()
	}

	a.CacheProvider, err = cache.NewProvider(startupCtx, cache.Config{
		Provider:              cfg.CacheProvider,
		RedisConnectionString: cfg.RedisConnectionString,
		MemorySize:            clientCacheSize,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize cache provider: %w", err)
	}

	a.DraftStore, err = drafts.NewStore(startupCtx, drafts.Config{
		Provider:              cfg.DraftStoreProvider,
		RedisConnectionString: cfg.RedisConnectionString,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize draft store: %w", err)
	}

	notifier, err := newNotifier(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize notifications: %w", err)
	}

	quoteService := services.NewQuoteService(svcCatalog, engine, estimator, logger.With("component", "quote_service"))
	draftService := services.NewDraftService(a.DraftStore, svcCatalog, quoteService, cfg.DraftTTL, logger.With("component", "draft_service"))
	clientService := services.NewClientService(clientStore, a.CacheProvider, cfg.ClientCacheTTL, logger.With("component", "client_service"))
	a.ProposalService = services.NewProposalService(services.ProposalServiceDeps{
		Assembler:        assembler,
		Store:            proposalStore,
		Clients:          clientService,
		Drafts:           draftService,
		Notifier:         notifier,
		DefaultSignature: cfg.DefaultSignatureName,
		Logger:           logger.With("component", "proposal_service"),
	})

	a.Handlers, err = handlers.New(handlers.Dependencies{
		Config:          cfg,
		DB:              pinger,
		Catalog:         svcCatalog,
		QuoteService:    quoteService,
		DraftService:    draftService,
		ProposalService: a.ProposalService,
		ClientService:   clientService,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize handlers: %w", err)
	}
	return nil
}

// newNotifier builds the summary notifiers that are configured. Without any,
// summaries are dropped.
func newNotifier(cfg *config.Config, logger *slog.Logger) (notify.Notifier, error) {
	var notifiers notify.Multi

	if cfg.NotifyWebhookURL != "" {
		notifiers = append(notifiers, notify.NewWebhook(cfg.NotifyWebhookURL, &http.Client{Timeout: 15 * time.Second}))
	}

	if cfg.EmailNotificationsEnabled() {
		provider, err := email.NewProvider(email.Config{
			Provider: cfg.NotifyEmailProvider,
			APIKey:   cfg.NotifyEmailAPIKey,
			From:     cfg.NotifyEmailFrom,
		})
		if err != nil {
			return nil, err
		}
		mailer, err := notify.NewEmail(provider, cfg.NotifyEmailTo)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, mailer)
	}

	if len(notifiers) == 0 {
		logger.Info("no proposal notifications configured")
		return notify.Noop{}, nil
	}
	logger.Info("proposal notifications enabled", "count", len(notifiers))
	return notifiers, nil
}

// Close waits for pending notifications and releases every resource.
func (a *App) Close() {
	if a == nil {
		return
	}
	if a.ProposalService != nil {
		a.ProposalService.Wait()
	}
	if a.DraftStore != nil {
		if err := a.DraftStore.Close(); err != nil {
			a.Logger.Warn("failed to close draft store", "error", err)
		}
	}
	if a.CacheProvider != nil {
		if err := a.CacheProvider.Close(); err != nil {
			a.Logger.Warn("failed to close cache provider", "error", err)
		}
	}
	if a.DB != nil {
		a.DB.Close()
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}
