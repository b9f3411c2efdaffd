package service

import (
	"context"
	"fmt"
	"time"

	"hospital-management-api/pkg/jwt"

	"github.com/redis/go-redis/v9"
)

// TokenStore is the allow-list of issued tokens. A token that is not in the
// store is treated as revoked.
type TokenStore interface {
	Store(ctx context.Context, userID uint, tokenType jwt.TokenType, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, userID uint, tokenType jwt.TokenType, tokenID string) (bool, error)
	Revoke(ctx context.Context, userID uint, tokenType jwt.TokenType, tokenID string) error
}

type redisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

// tokenKey formats access_token:<user>:<id> and refresh_token:<user>:<id>.
func tokenKey(userID uint, tokenType jwt.TokenType, tokenID string) string {
	return fmt.Sprintf("%s_token:%d:%s", tokenType, userID, tokenID)
}

func (s *redisTokenStore) Store(ctx context.Context, userID uint, tokenType jwt.TokenType, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, tokenKey(userID, tokenType, tokenID), "valid", ttl).Err()
}

func (s *redisTokenStore) Exists(ctx context.Context, userID uint, tokenType jwt.TokenType, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, tokenKey(userID, tokenType, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisTokenStore) Revoke(ctx context.Context, userID uint, tokenType jwt.TokenType, tokenID string) error {
	return s.client.Del(ctx, tokenKey(userID, tokenType, tokenID)).Err()
}
