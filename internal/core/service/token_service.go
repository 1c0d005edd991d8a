package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/edgerelay/edgerelay/internal/core/domain"
)

// TokenService issues and verifies HMAC-signed JWTs. Symmetric signing keeps
// verification stateless: any process holding the secret can verify without a
// shared session store. The service is realm-agnostic: it round-trips the
// role claim but never interprets it.
type TokenService struct {
	secret     []byte
	method     *jwt.SigningMethodHMAC
	defaultTTL time.Duration
	now        func() time.Time
}

// NewTokenService creates a TokenService. algorithm must be one of HS256,
// HS384, HS512; a non-positive defaultTTL falls back to 30 minutes.
func NewTokenService(secret, algorithm string, defaultTTL time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("token service: signing secret is required")
	}
	var method *jwt.SigningMethodHMAC
	switch algorithm {
	case "", jwt.SigningMethodHS256.Name:
		method = jwt.SigningMethodHS256
	case jwt.SigningMethodHS384.Name:
		method = jwt.SigningMethodHS384
	case jwt.SigningMethodHS512.Name:
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("token service: unsupported signing algorithm %q", algorithm)
	}
	if defaultTTL <= 0 {
		defaultTTL = 30 * time.Minute
	}
	return &TokenService{
		secret:     []byte(secret),
		method:     method,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}, nil
}

// Issue embeds the claims plus issued-at and expiry and returns the compact
// signed token. A non-positive ttl selects the configured default.
func (s *TokenService) Issue(claims *domain.Claims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	now := s.now().UTC()

	mc := jwt.MapClaims{
		"sub":      claims.SubjectID,
		"username": claims.Username,
		"role":     string(claims.Realm),
		"iat":      jwt.NewNumericDate(now),
		"exp":      jwt.NewNumericDate(now.Add(ttl)),
	}
	if claims.CompanyName != "" {
		mc["company_name"] = claims.CompanyName
	}
	// admin_id/client_id mirror sub for consumers keyed on the realm-specific
	// name. Verify reads only sub.
	switch claims.Realm {
	case domain.RealmAdmin:
		mc["admin_id"] = claims.SubjectID
	case domain.RealmClient:
		mc["client_id"] = claims.SubjectID
	}

	return jwt.NewWithClaims(s.method, mc).SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded claims. Every
// failure mode collapses to domain.ErrInvalidToken.
func (s *TokenService) Verify(token string) (*domain.Claims, error) {
	mc := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, mc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := mc["sub"].(string)
	username, _ := mc["username"].(string)
	role, _ := mc["role"].(string)
	if sub == "" || username == "" || !domain.Realm(role).Valid() {
		return nil, domain.ErrInvalidToken
	}

	claims := &domain.Claims{
		SubjectID: sub,
		Username:  username,
		Realm:     domain.Realm(role),
	}
	if company, ok := mc["company_name"].(string); ok {
		claims.CompanyName = company
	}
	return claims, nil
}
