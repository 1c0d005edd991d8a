package ports

import (
	"context"

	"github.com/edgerelay/edgerelay/internal/core/domain"
)

// AuthService is the realm-scoped authentication orchestrator. One instance
// exists per realm; both share the token service and hasher but operate over
// disjoint identity stores.
type AuthService interface {
	// Login verifies credentials against the realm store and mints a bearer
	// token. Unknown users, deactivated users, and wrong passwords all fail
	// with domain.ErrInvalidCredentials, so usernames cannot be enumerated.
	Login(ctx context.Context, username, password string) (string, *domain.Identity, error)

	// Authenticate verifies the token and enforces that its role claim
	// matches requiredRealm. A cryptographically valid token from the other
	// realm fails with domain.ErrWrongRealm.
	Authenticate(token string, requiredRealm domain.Realm) (*domain.Claims, error)

	// WhoAmI re-fetches the current identity from the realm store so edits
	// and deactivations since token issuance are reflected.
	WhoAmI(ctx context.Context, claims *domain.Claims) (*domain.Identity, error)

	// Logout acknowledges the client-side token discard. Tokens are
	// stateless bearer credentials with no revocation list, so this only
	// clears the advisory session entry.
	Logout(ctx context.Context, claims *domain.Claims) error
}

// ClientDirectory is the admin-facing management surface over the client
// realm. Callers must already be authenticated as admins; the handlers
// enforce that before any of these run.
type ClientDirectory interface {
	// Create provisions a client account. The password must pass the
	// strength policy (domain.ErrWeakPassword) and the username must be
	// unique within the client realm (domain.ErrDuplicateUsername).
	Create(ctx context.Context, input ClientCreateInput) (*domain.Identity, error)

	// List returns all client accounts, newest first.
	List(ctx context.Context) ([]domain.Identity, error)

	// Get returns one client account by ID.
	Get(ctx context.Context, id string) (*domain.Identity, error)

	// Update rewrites the client's profile fields.
	Update(ctx context.Context, id string, input ClientUpdateInput) (*domain.Identity, error)

	// Deactivate soft-deletes the client account.
	Deactivate(ctx context.Context, id string) error
}

// ClientCreateInput carries the fields for provisioning a client account.
type ClientCreateInput struct {
	Username    string
	Password    string
	FullName    string
	CompanyName string
}

// ClientUpdateInput carries the mutable profile fields.
type ClientUpdateInput struct {
	FullName    string
	CompanyName string
}
