package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers processed operation keys so payment
// gateway callbacks delivered more than once take effect only once.
type IdempotencyStore interface {
	// MarkProcessed atomically records a key with a TTL. It reports
	// true when the key is new, false when an earlier delivery already
	// claimed it.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether a key was already recorded.
	IsProcessed(ctx context.Context, key string) (bool, error)

	Close() error
}

// IdempotencyConfig controls callback deduplication. After TTL expires
// a key may be processed again; the aggregates' status guards are the
// backstop for that window.
type IdempotencyConfig struct {
	TTL     time.Duration
	Enabled bool
}

// DefaultIdempotencyConfig keeps keys for a day.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
