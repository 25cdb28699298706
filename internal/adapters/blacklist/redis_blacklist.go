// Package blacklist stores revoked access tokens in Redis until their
// natural expiry.
package blacklist

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sitegarden/account-service/internal/core/ports"
)

const keyPrefix = "revoked_token:"

type RedisBlacklist struct {
	client *redis.Client
}

var _ ports.TokenBlacklist = (*RedisBlacklist)(nil)

func NewRedisBlacklist(client *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{client: client}
}

func (b *RedisBlacklist) Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error {
	return b.client.Set(ctx, keyPrefix+tokenHash, "1", ttl).Err()
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	err := b.client.Get(ctx, keyPrefix+tokenHash).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
