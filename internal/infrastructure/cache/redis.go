package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// pingTimeout bounds the connectivity check; the idempotency middleware
// carries its own per-request timeouts.
const pingTimeout = 5 * time.Second

// OpenRedis connects the client backing the idempotency store.
func OpenRedis(addr string, db int) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	log.Printf("redis: connected to %s (db %d)", addr, db)
	return r, nil
}
