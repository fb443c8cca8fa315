package utils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// AllowRequest implements a fixed window counter in Redis. The first hit of a
// window sets the key's expiry, so the counter resets once the window passes.
// A nil client always allows.
func AllowRequest(ctx context.Context, rdb *redis.Client, key string, limit int, window time.Duration) (bool, error) {
	if rdb == nil || limit <= 0 {
		return true, nil
	}
	pipe := rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, err
	}
	return incr.Val() <= int64(limit), nil
}
