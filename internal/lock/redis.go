package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// só apaga se o token ainda for o nosso
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker usa SET NX PX; vale entre várias instâncias da API.
type RedisLocker struct {
	rdb    *redis.Client
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
	prefix string
	logger *slog.Logger
}

func NewRedisLocker(
	rdb *redis.Client,
	ttl time.Duration,
	wait time.Duration,
	logger *slog.Logger,
) *RedisLocker {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	if wait <= 0 {
		wait = 2 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisLocker{
		rdb:    rdb,
		ttl:    ttl,
		wait:   wait,
		retry:  50 * time.Millisecond,
		prefix: "lock",
		logger: logger,
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	k := l.prefix + ":" + strings.TrimSpace(key)
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	for {
		ok, err := l.rdb.SetNX(waitCtx, k, token, l.ttl).Result()
		if err != nil {
			if waitCtx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", ErrNotAcquired, waitCtx.Err())
			}
			return nil, fmt.Errorf("redis setnx %s: %w", k, err)
		}
		if ok {
			break
		}

		select {
		case <-waitCtx.Done():
			return nil, fmt.Errorf("%w: %v", ErrNotAcquired, waitCtx.Err())
		case <-time.After(l.retry):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// a requisição pode já ter sido cancelada
			relCtx, relCancel := context.WithTimeout(context.Background(), time.Second)
			defer relCancel()

			if err := releaseScript.Run(relCtx, l.rdb, []string{k}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
				l.logger.Warn("slot lock release failed", "key", k, "err", err)
			}
		})
	}, nil
}

var _ Locker = (*RedisLocker)(nil)
