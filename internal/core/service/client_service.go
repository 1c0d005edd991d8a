package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/edgerelay/edgerelay/internal/api/metrics"
	"github.com/edgerelay/edgerelay/internal/core/domain"
	"github.com/edgerelay/edgerelay/internal/core/ports"
)

// ClientService is the admin-facing management surface over the client realm
// store: provisioning, listing, profile updates, and soft-deactivation.
// Admin authentication happens upstream in the middleware; this service only
// deals with the client records themselves.
type ClientService struct {
	store  ports.IdentityStore
	hasher ports.PasswordHasher
	policy *PasswordPolicy
	log    zerolog.Logger
}

// NewClientService wires a ClientService over the client realm's store.
func NewClientService(store ports.IdentityStore, hasher ports.PasswordHasher, policy *PasswordPolicy, log zerolog.Logger) *ClientService {
	return &ClientService{store: store, hasher: hasher, policy: policy, log: log}
}

// Create provisions a client account. The password strength policy runs only
// here, never at login. Username uniqueness is left to the store's constraint:
// two concurrent creates with the same username race at the insert, and the
// loser surfaces domain.ErrDuplicateUsername.
func (s *ClientService) Create(ctx context.Context, input ports.ClientCreateInput) (*domain.Identity, error) {
	if !s.policy.Validate(input.Password) {
		return nil, domain.ErrWeakPassword
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.store.Insert(ctx, &domain.Identity{
		ID:           uuid.NewString(),
		Username:     input.Username,
		PasswordHash: hash,
		FullName:     input.FullName,
		CompanyName:  input.CompanyName,
		Realm:        domain.RealmClient,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("company", created.CompanyName).Msg("client account created")
	metrics.ClientAccountsCreatedTotal.Inc()
	return created, nil
}

// List returns all client accounts, newest first.
func (s *ClientService) List(ctx context.Context) ([]domain.Identity, error) {
	return s.store.List(ctx)
}

// Get returns one client account by ID.
func (s *ClientService) Get(ctx context.Context, id string) (*domain.Identity, error) {
	return s.store.FindByID(ctx, id)
}

// Update rewrites the client's profile fields and returns the stored record.
func (s *ClientService) Update(ctx context.Context, id string, input ports.ClientUpdateInput) (*domain.Identity, error) {
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.FullName != "" {
		current.FullName = input.FullName
	}
	if input.CompanyName != "" {
		current.CompanyName = input.CompanyName
	}
	return s.store.Update(ctx, current)
}

// Deactivate soft-deletes the client account. The record stays in the store
// but no longer matches at login.
func (s *ClientService) Deactivate(ctx context.Context, id string) error {
	if err := s.store.Deactivate(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("client_id", id).Msg("client account deactivated")
	return nil
}
