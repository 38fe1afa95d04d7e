package resource

import (
	"context"
	"errors"
	"time"

	"github.com/weiawesome/momentroom/internal/query"
)

var ErrCacheMiss = errors.New("cache miss")

// Store is an optional second-level cache shared between client processes.
// Values are opaque encoded bytes; expiry is the store's own policy.
type Store interface {
	Get(ctx context.Context, key query.Key) ([]byte, error)
	Set(ctx context.Context, key query.Key, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...query.Key) error
	Close() error
}
