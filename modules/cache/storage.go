// Package cache provides the key/value storage shared by the transport and
// page caches, exposed to other modules as a mono plugin.
package cache

import (
	"context"
	"time"
)

// Storage is the byte-level backend behind every cache tier.
// A missing or expired key reads as (nil, nil).
// gofiber/storage/redis satisfies it directly.
type Storage interface {
	GetWithContext(ctx context.Context, key string) ([]byte, error)
	SetWithContext(ctx context.Context, key string, val []byte, exp time.Duration) error
	DeleteWithContext(ctx context.Context, key string) error
	ResetWithContext(ctx context.Context) error
	Close() error
}
