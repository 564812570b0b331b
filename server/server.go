package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/exposeprofi/proposals/internal/config"
	"github.com/exposeprofi/proposals/internal/handlers"
)

type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	handlers   *handlers.Handlers
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger, h *handlers.Handlers) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if h == nil {
		return nil, fmt.Errorf("handlers are required")
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		handlers: h,
	}

	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(h),
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return s, nil
}

func (s *Server) Run() error {
	s.logger.Info("server starting", "port", s.cfg.Port)

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Close(ctx context.Context) error {
	if s == nil || s.httpServer == nil {
		return nil
	}

	s.logger.Info("server shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// NewRouter registers every route of the proposal API.
func NewRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(h.RequestLogger)
	r.Use(h.SecurityHeaders)
	r.HandleFunc("/health", h.Health).Methods("GET").Name("health")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}` + "\n"))
	})

	api := r.PathPrefix("/api").Subrouter()
	api.Use(h.RequireSameOrigin)

	api.HandleFunc("/catalog", h.ListCatalog).Methods("GET").Name("catalog.list")
	api.HandleFunc("/catalog/{serviceID}", h.GetCatalogService).Methods("GET").Name("catalog.get")

	api.HandleFunc("/quote", h.PreviewQuote).Methods("POST").Name("quote.preview")

	api.HandleFunc("/drafts", h.CreateDraft).Methods("POST").Name("drafts.create")
	api.HandleFunc("/drafts/{id}", h.GetDraft).Methods("GET").Name("drafts.get")
	api.HandleFunc("/drafts/{id}", h.DeleteDraft).Methods("DELETE").Name("drafts.delete")
	api.HandleFunc("/drafts/{id}/services/{serviceID}", h.UpdateDraftService).Methods("PUT").Name("drafts.services.update")
	api.HandleFunc("/drafts/{id}/discount", h.SetDraftDiscount).Methods("PUT").Name("drafts.discount")
	api.HandleFunc("/drafts/{id}/services/{serviceID}/bullets/default", h.EditDefaultBullet).Methods("POST").Name("drafts.bullets.default")
	api.HandleFunc("/drafts/{id}/services/{serviceID}/bullets/custom", h.EditCustomBullet).Methods("POST").Name("drafts.bullets.custom")

	api.HandleFunc("/proposals", h.CreateProposal).Methods("POST").Name("proposals.create")
	api.HandleFunc("/proposals/{offerNumber}", h.GetProposal).Methods("GET").Name("proposals.get")

	api.HandleFunc("/clients/email/{email}", h.GetClientByEmail).Methods("GET").Name("clients.email")
	api.HandleFunc("/clients/{clientNumber}", h.GetClient).Methods("GET").Name("clients.get")

	return r
}
