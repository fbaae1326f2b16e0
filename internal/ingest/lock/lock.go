// Package lock keeps two loads from writing to the same store at once.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrHeld means another load holds the lock.
	ErrHeld = errors.New("import lock is held by another load")
	// ErrLost means the lease expired before it was released.
	ErrLost = errors.New("import lock expired before release")
)

// DefaultKey is the redis key guarding client loads.
const DefaultKey = "hmis:import-lock"

// Lock hands out one lease at a time.
type Lock interface {
	Acquire(ctx context.Context) (Lease, error)
}

// Lease is a held lock.
type Lease interface {
	Release(ctx context.Context) error
}

type redisClient interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a SET NX lock with a TTL so a crashed load cannot hold it forever.
type Redis struct {
	client redisClient
	key    string
	ttl    time.Duration
}

func NewRedis(client redisClient, key string, ttl time.Duration) *Redis {
	if key == "" {
		key = DefaultKey
	}
	return &Redis{client: client, key: key, ttl: ttl}
}

func (l *Redis) Acquire(ctx context.Context) (Lease, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", l.key, err)
	}
	if !ok {
		holder, _ := l.client.Get(ctx, l.key).Result()
		return nil, fmt.Errorf("%w (key %s, holder %s)", ErrHeld, l.key, holder)
	}
	return &redisLease{lock: l, token: token}, nil
}

type redisLease struct {
	lock  *Redis
	token string
}

func (r *redisLease) Release(ctx context.Context) error {
	n, err := releaseScript.Run(ctx, r.lock.client, []string{r.lock.key}, r.token).Int()
	if err != nil {
		return fmt.Errorf("release %s: %w", r.lock.key, err)
	}
	if n == 0 {
		return ErrLost
	}
	return nil
}

// Noop always grants the lock. Used when no redis is configured.
type Noop struct{}

func (Noop) Acquire(context.Context) (Lease, error) {
	return noopLease{}, nil
}

type noopLease struct{}

func (noopLease) Release(context.Context) error {
	return nil
}
