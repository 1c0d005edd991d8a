package ports

import (
	"context"
	"time"

	"github.com/edgerelay/edgerelay/internal/core/domain"
)

// SessionCache records advisory session state alongside stateless tokens.
// Token validity never depends on it; losing the cache loses nothing but
// observability.
type SessionCache interface {
	// Put records a login for the identity with the given lifetime.
	Put(ctx context.Context, claims *domain.Claims, ttl time.Duration) error

	// Drop removes the session entry on logout. Missing entries are not an
	// error.
	Drop(ctx context.Context, claims *domain.Claims) error
}
