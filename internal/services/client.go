package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/exposeprofi/proposals/internal/cache"
	"github.com/exposeprofi/proposals/internal/db"
)

type ClientRepository interface {
	GetByNumber(ctx context.Context, clientNumber string) (*db.Client, error)
	GetByEmail(ctx context.Context, email string) (*db.Client, error)
}

// ClientService looks up clients with a read-through cache in front of the store.
type ClientService struct {
	store  ClientRepository
	cache  cache.Provider
	ttl    time.Duration
	logger *slog.Logger
}

func NewClientService(store ClientRepository, cacheProvider cache.Provider, ttl time.Duration, logger *slog.Logger) *ClientService {
	return &ClientService{store: store, cache: cacheProvider, ttl: ttl, logger: logger}
}

func (s *ClientService) Lookup(ctx context.Context, clientNumber string) (*db.Client, error) {
	clientNumber = strings.TrimSpace(clientNumber)
	if clientNumber == "" {
		return nil, ErrClientRequired
	}
	return s.cached(ctx, cache.ClientKey(clientNumber), func() (*db.Client, error) {
		return s.store.GetByNumber(ctx, clientNumber)
	})
}

func (s *ClientService) LookupByEmail(ctx context.Context, email string) (*db.Client, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrClientRequired
	}
	return s.cached(ctx, cache.ClientEmailKey(email), func() (*db.Client, error) {
		return s.store.GetByEmail(ctx, email)
	})
}

func (s *ClientService) cached(ctx context.Context, key string, load func() (*db.Client, error)) (*db.Client, error) {
	logger := loggerFromContext(ctx, s.logger)

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			var client db.Client
			if jsonErr := json.Unmarshal([]byte(raw), &client); jsonErr == nil {
				return &client, nil
			}
			logger.Warn("dropping undecodable client cache entry", "key", key)
			_ = s.cache.Delete(ctx, key)
		case !errors.Is(err, cache.ErrNotFound):
			logger.Warn("client cache read failed", "key", key, "error", err)
		}
	}

	client, err := load()
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to look up client: %w", err)
	}

	if s.cache != nil {
		if payload, jsonErr := json.Marshal(client); jsonErr == nil {
			if setErr := s.cache.Set(ctx, key, string(payload), s.ttl); setErr != nil {
				logger.Warn("client cache write failed", "key", key, "error", setErr)
			}
		}
	}
	return client, nil
}
