// Package cache keeps client lookups close to the handlers so repeated proposal
// forms do not hit the client table on every keystroke.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrNotFound = errors.New("key not found")

type Provider interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Config struct {
	Provider              string
	RedisConnectionString string
	MemorySize            int
}

// NewProvider builds the configured cache. ctx bounds the initial redis ping.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "memory", "":
		return NewMemoryProvider(cfg.MemorySize)
	case "redis":
		return NewRedisProvider(ctx, cfg.RedisConnectionString)
	default:
		return nil, fmt.Errorf("unsupported cache provider: %s", cfg.Provider)
	}
}

func ClientKey(clientNumber string) string {
	return "client:number:" + strings.TrimSpace(clientNumber)
}

// ClientEmailKey normalises the address so lookups differing only in case share an entry.
func ClientEmailKey(email string) string {
	return "client:email:" + strings.ToLower(strings.TrimSpace(email))
}
