package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hospital-management-api/internal/service"
	"hospital-management-api/pkg/jwt"
)

// TokenStore is an in-memory allow-list. Expiry is not emulated.
type TokenStore struct {
	mu     sync.Mutex
	tokens map[string]bool

	// FailWith, when set, is returned by every call.
	FailWith error
}

func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: map[string]bool{}}
}

var _ service.TokenStore = (*TokenStore)(nil)

func key(userID uint, tokenType jwt.TokenType, tokenID string) string {
	return fmt.Sprintf("%s:%d:%s", tokenType, userID, tokenID)
}

func (s *TokenStore) Store(ctx context.Context, userID uint, tokenType jwt.TokenType, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	s.tokens[key(userID, tokenType, tokenID)] = true
	return nil
}

func (s *TokenStore) Exists(ctx context.Context, userID uint, tokenType jwt.TokenType, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return false, s.FailWith
	}
	return s.tokens[key(userID, tokenType, tokenID)], nil
}

func (s *TokenStore) Revoke(ctx context.Context, userID uint, tokenType jwt.TokenType, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	delete(s.tokens, key(userID, tokenType, tokenID))
	return nil
}

// Len returns the number of live tokens.
func (s *TokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}
