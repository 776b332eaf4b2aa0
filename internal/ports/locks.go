package ports

import (
	"context"
	"time"
)

// SyncLock serializes batch sync runs across processes. Acquire returns a
// release function when the lock was taken, and ok=false when another run
// holds it. Only the owner's release function frees the lock; expiry via
// TTL protects against crashed holders.
type SyncLock interface {
	Acquire(ctx context.Context, ttl time.Duration) (release func(context.Context), ok bool, err error)
}
