package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OpenRedis connects to Redis and verifies the connection with PING.
func OpenRedis(addr string, db int) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

// Redis is a ViewCache shared by every replica pointing at the same server.
// Generation counters carry no TTL so an expired counter can never resurrect
// pages written under an older version.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ViewCache = (*Redis)(nil)

// NewRedis wraps client; entries expire after ttl.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) version(ctx context.Context, key string) (Version, error) {
	gen, err := r.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", key, err)
	}
	return Version(gen), nil
}

func (r *Redis) get(ctx context.Context, key string) ([]byte, bool, error) {
	page, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return page, true, nil
}

func (r *Redis) GetList(ctx context.Context, query string) ([]byte, Version, bool, error) {
	version, err := r.version(ctx, listGenerationKey)
	if err != nil {
		return nil, 0, false, err
	}
	page, ok, err := r.get(ctx, listKey(version, query))
	return page, version, ok, err
}

func (r *Redis) SetList(ctx context.Context, query string, version Version, page []byte) error {
	return r.client.Set(ctx, listKey(version, query), page, r.ttl).Err()
}

func (r *Redis) GetDetail(ctx context.Context, loanID string) ([]byte, Version, bool, error) {
	version, err := r.version(ctx, detailGenerationKey(loanID))
	if err != nil {
		return nil, 0, false, err
	}
	page, ok, err := r.get(ctx, detailKey(version, loanID))
	return page, version, ok, err
}

func (r *Redis) SetDetail(ctx context.Context, loanID string, version Version, page []byte) error {
	return r.client.Set(ctx, detailKey(version, loanID), page, r.ttl).Err()
}

func (r *Redis) InvalidateLoans(ctx context.Context, loanIDs ...string) error {
	pipe := r.client.TxPipeline()
	pipe.Incr(ctx, listGenerationKey)
	for _, id := range loanIDs {
		pipe.Incr(ctx, detailGenerationKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("invalidate loan views: %w", err)
	}
	return nil
}
