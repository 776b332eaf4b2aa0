package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const syncLockKey = "monei:sync:lock"

// releaseScript deletes the lock only when the stored token still matches,
// so an expired-and-reacquired lock is never released by the old holder.
const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
end
return 0
`

// RedisSyncLock serializes sync runs across processes with SET NX plus a
// TTL. The TTL bounds how long a crashed holder can block the next run.
type RedisSyncLock struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRedisSyncLock(client *redis.Client, logger *slog.Logger) *RedisSyncLock {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisSyncLock{
		client: client,
		logger: logger.With("module", "cache", "layer", "adapter"),
	}
}

func (l *RedisSyncLock) Acquire(ctx context.Context, ttl time.Duration) (func(context.Context), bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, syncLockKey, token, ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	release := func(releaseCtx context.Context) {
		if err := l.client.Eval(releaseCtx, releaseScript, []string{syncLockKey}, token).Err(); err != nil {
			l.logger.WarnContext(releaseCtx, "sync lock release failed",
				"operation", "release_sync_lock",
				"outcome", "failure",
				"error", err.Error(),
			)
		}
	}
	return release, true, nil
}
