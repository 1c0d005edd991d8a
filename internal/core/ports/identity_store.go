package ports

import (
	"context"

	"github.com/edgerelay/edgerelay/internal/core/domain"
)

// IdentityStore is the persistence contract for one realm's identity records.
// Two independent implementations exist at runtime, one per realm database.
//
// Username uniqueness is the store's responsibility: Insert must rely on the
// database's unique constraint and surface a conflicting insert as
// domain.ErrDuplicateUsername, never on an application-level check.
type IdentityStore interface {
	// FindActiveByUsername returns the active identity with the given
	// username, or domain.ErrIdentityNotFound. Deactivated records are not
	// matchable, so callers cannot distinguish "inactive" from "absent".
	FindActiveByUsername(ctx context.Context, username string) (*domain.Identity, error)

	// FindByID returns the identity regardless of active flag, or
	// domain.ErrIdentityNotFound.
	FindByID(ctx context.Context, id string) (*domain.Identity, error)

	// Insert persists a new identity and returns the stored record with
	// database-assigned timestamps.
	Insert(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)

	// List returns all identities in the realm, newest first.
	List(ctx context.Context) ([]domain.Identity, error)

	// Update rewrites the mutable profile fields (full name, company name)
	// and refreshes updated_at.
	Update(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)

	// Deactivate soft-deletes the identity by clearing its active flag.
	Deactivate(ctx context.Context, id string) error
}
