package ports

import (
	"time"

	"github.com/edgerelay/edgerelay/internal/core/domain"
)

// TokenService signs and verifies self-contained bearer tokens. It is
// realm-agnostic: the role claim it carries is interpreted by the auth
// service, not here.
type TokenService interface {
	// Issue embeds the claims plus issued-at/expiry and returns a compact
	// signed token. A non-positive ttl selects the configured default.
	Issue(claims *domain.Claims, ttl time.Duration) (string, error)

	// Verify checks signature and expiry and returns the embedded claims.
	// Any failure (bad signature, malformed claims, expired token) is
	// domain.ErrInvalidToken.
	Verify(token string) (*domain.Claims, error)
}
