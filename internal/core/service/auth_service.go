package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/edgerelay/edgerelay/internal/api/metrics"
	"github.com/edgerelay/edgerelay/internal/core/domain"
	"github.com/edgerelay/edgerelay/internal/core/ports"
)

// AuthService implements login, token authentication, whoami and logout for
// one realm. The admin and client instances share the token service and
// hasher but each owns its realm's identity store; realm isolation is
// enforced here, not in the token layer.
type AuthService struct {
	realm    domain.Realm
	store    ports.IdentityStore
	tokens   ports.TokenService
	hasher   ports.PasswordHasher
	sessions ports.SessionCache
	tokenTTL time.Duration
	log      zerolog.Logger
}

// NewAuthService wires an AuthService for the given realm. sessions may be
// nil when no cache is configured. A non-positive tokenTTL falls back to
// 30 minutes.
func NewAuthService(
	realm domain.Realm,
	store ports.IdentityStore,
	tokens ports.TokenService,
	hasher ports.PasswordHasher,
	sessions ports.SessionCache,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 30 * time.Minute
	}
	return &AuthService{
		realm:    realm,
		store:    store,
		tokens:   tokens,
		hasher:   hasher,
		sessions: sessions,
		tokenTTL: tokenTTL,
		log:      log.With().Str("realm", string(realm)).Logger(),
	}
}

// Login verifies credentials and mints a bearer token for this realm.
// The caller-visible failure is domain.ErrInvalidCredentials for unknown
// usernames, deactivated accounts, and wrong passwords alike; the distinction
// is only logged server-side.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Identity, error) {
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues(string(s.realm), "failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	identity, err := s.store.FindActiveByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			s.log.Debug().Str("username", username).Msg("login: no active identity")
			metrics.LoginsTotal.WithLabelValues(string(s.realm), "failure").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues(string(s.realm), "failure").Inc()
		return "", nil, err
	}

	if !s.hasher.Verify(password, identity.PasswordHash) {
		s.log.Debug().Str("username", username).Msg("login: password mismatch")
		metrics.LoginsTotal.WithLabelValues(string(s.realm), "failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	claims := &domain.Claims{
		SubjectID:   identity.ID,
		Username:    identity.Username,
		Realm:       s.realm,
		CompanyName: identity.CompanyName,
	}

	token, err := s.tokens.Issue(claims, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}

	if s.sessions != nil {
		if err := s.sessions.Put(ctx, claims, s.tokenTTL); err != nil {
			// Advisory only; the login still succeeds.
			s.log.Warn().Err(err).Msg("session cache write failed")
		}
	}

	s.log.Info().Str("username", identity.Username).Msg("login succeeded")
	metrics.LoginsTotal.WithLabelValues(string(s.realm), "success").Inc()
	return token, identity, nil
}

// Authenticate verifies the token and checks its role claim against
// requiredRealm. Signature/expiry failures are domain.ErrInvalidToken; a
// valid token carrying the other realm's role is domain.ErrWrongRealm.
func (s *AuthService) Authenticate(token string, requiredRealm domain.Realm) (*domain.Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}
	if claims.Realm != requiredRealm {
		s.log.Debug().
			Str("token_realm", string(claims.Realm)).
			Str("required_realm", string(requiredRealm)).
			Msg("realm mismatch")
		metrics.TokenVerificationsTotal.WithLabelValues("wrong_realm").Inc()
		return nil, domain.ErrWrongRealm
	}
	metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
	return claims, nil
}

// WhoAmI re-fetches the current identity from the realm store, so profile
// edits and deactivations since token issuance are reflected. A deactivated
// identity no longer authenticates even with an unexpired token.
func (s *AuthService) WhoAmI(ctx context.Context, claims *domain.Claims) (*domain.Identity, error) {
	identity, err := s.store.FindByID(ctx, claims.SubjectID)
	if err != nil {
		return nil, err
	}
	if !identity.IsActive {
		return nil, domain.ErrInvalidToken
	}
	return identity, nil
}

// Logout clears the advisory session entry and acknowledges. There is no
// server-side token revocation: the token stays cryptographically valid
// until expiry. Known limitation of the stateless design.
func (s *AuthService) Logout(ctx context.Context, claims *domain.Claims) error {
	if s.sessions != nil {
		if err := s.sessions.Drop(ctx, claims); err != nil {
			s.log.Warn().Err(err).Msg("session cache drop failed")
		}
	}
	s.log.Info().Str("username", claims.Username).Msg("logout acknowledged")
	return nil
}
