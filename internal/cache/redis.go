package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Open returns a Redis-backed KV, or NopKV when addr is empty or the server
// does not answer a ping. Caching is optional; the service runs without it.
func Open(ctx context.Context, addr, password string, db int, log *zap.Logger) (KV, func() error) {
	if addr == "" {
		log.Info("redis disabled, doctor cache off")
		return NopKV{}, func() error { return nil }
	}

	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unreachable, doctor cache off", zap.String("addr", addr), zap.Error(err))
		_ = c.Close()
		return NopKV{}, func() error { return nil }
	}

	return NewRedisKV(c), c.Close
}
