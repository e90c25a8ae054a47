package cache

import (
	"context"

	"github.com/amoylab/rentboard/internal/apiserver/database"
	"github.com/amoylab/rentboard/internal/common/config"
	"go.uber.org/zap"
)

// ListingCache holds single-listing lookups. Failures are logged by the
// implementation and surface as misses, never as request errors.
type ListingCache interface {
	Get(ctx context.Context, id database.ID) (*database.Listing, bool)
	Set(ctx context.Context, listing *database.Listing)
	Invalidate(ctx context.Context, id database.ID)
	Close() error
}

// NewListingCache returns a Redis backed cache when enabled and a no-op otherwise
func NewListingCache(cfg *config.CacheConfig, logger *zap.Logger) (ListingCache, error) {
	if !cfg.Enabled {
		return Noop{}, nil
	}
	return NewRedisListingCache(cfg, logger)
}

// Noop caches nothing
type Noop struct{}

func (Noop) Get(context.Context, database.ID) (*database.Listing, bool) { return nil, false }
func (Noop) Set(context.Context, *database.Listing)                    {}
func (Noop) Invalidate(context.Context, database.ID)                   {}
func (Noop) Close() error                                              { return nil }
