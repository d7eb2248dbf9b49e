package cache

import (
	"context"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Cache keys used by the listing services.
const (
	KeyPublishedBlogs = "blogs:published"
	KeyUpcomingEvents = "events:upcoming"
	KeyPastEvents     = "events:past"
)
