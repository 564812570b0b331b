// Package drafts stores in-progress quotes between edit requests.
package drafts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/exposeprofi/proposals/internal/quote"
)

var ErrNotFound = errors.New("draft not found")

// Store keeps drafts for a limited time. Implementations hand out copies, so a
// caller mutating a loaded draft must Set it again.
type Store interface {
	Get(ctx context.Context, id string) (*quote.Draft, error)
	Set(ctx context.Context, draft *quote.Draft, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	Close() error
}

type Config struct {
	Provider              string
	RedisConnectionString string
}

func NewStore(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Provider {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(ctx, cfg.RedisConnectionString)
	default:
		return nil, fmt.Errorf("unsupported draft store provider: %s", cfg.Provider)
	}
}
