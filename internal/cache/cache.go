package cache

import (
	"context"
	"time"
)

// Cache is the JSON look-aside cache in front of profile and rating-summary
// reads. A miss is (false, nil); errors are reserved for the backend.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
