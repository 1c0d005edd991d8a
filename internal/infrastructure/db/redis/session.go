package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edgerelay/edgerelay/internal/core/domain"
)

// SessionCache implements ports.SessionCache backed by Redis.
// Key format: session:<realm>:<subject_id>
//
// Entries are advisory: they expire with the token and token validity never
// consults them. The password hash and the token itself are never stored.
type SessionCache struct {
	client *redis.Client
}

// NewSessionCache creates a SessionCache wrapping the given Redis client.
func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client}
}

// Put records a login with the token's lifetime.
func (s *SessionCache) Put(ctx context.Context, claims *domain.Claims, ttl time.Duration) error {
	key := s.key(claims)
	fields := map[string]any{
		"username": claims.Username,
		"login_at": time.Now().UTC().Format(time.RFC3339),
	}
	if claims.CompanyName != "" {
		fields["company_name"] = claims.CompanyName
	}
	if err := s.client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("session put: %w", err)
	}
	if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
		return fmt.Errorf("session expire: %w", err)
	}
	return nil
}

// Drop removes the session entry. Missing entries are not an error.
func (s *SessionCache) Drop(ctx context.Context, claims *domain.Claims) error {
	if err := s.client.Del(ctx, s.key(claims)).Err(); err != nil {
		return fmt.Errorf("session drop: %w", err)
	}
	return nil
}

func (s *SessionCache) key(claims *domain.Claims) string {
	return fmt.Sprintf("session:%s:%s", claims.Realm, claims.SubjectID)
}
