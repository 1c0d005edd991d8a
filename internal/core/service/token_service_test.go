package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/edgerelay/edgerelay/internal/core/domain"
)

func TestNewTokenService_Validation(t *testing.T) {
	if _, err := NewTokenService("", "HS256", time.Minute); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if _, err := NewTokenService("secret", "RS256", time.Minute); err == nil {
		t.Fatalf("expected error for asymmetric algorithm")
	}
	if _, err := NewTokenService("secret", "HS512", time.Minute); err != nil {
		t.Fatalf("HS512 should be accepted: %v", err)
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc, err := NewTokenService("secret", "HS256", 30*time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	in := &domain.Claims{
		SubjectID:   "c-1",
		Username:    "acme",
		Realm:       domain.RealmClient,
		CompanyName: "ACME Corp",
	}
	token, err := svc.Issue(in, 0)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	out, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if *out != *in {
		t.Fatalf("claims changed in transit: got %+v, want %+v", out, in)
	}
}

func TestTokenService_RealmIDAliases(t *testing.T) {
	svc, err := NewTokenService("secret", "HS256", time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	decode := func(token string) jwt.MapClaims {
		t.Helper()
		mc := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(token, mc, func(*jwt.Token) (interface{}, error) {
			return []byte("secret"), nil
		}); err != nil {
			t.Fatalf("parse: %v", err)
		}
		return mc
	}

	adminToken, err := svc.Issue(&domain.Claims{SubjectID: "a-1", Username: "root", Realm: domain.RealmAdmin}, time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	mc := decode(adminToken)
	if mc["admin_id"] != "a-1" {
		t.Fatalf("admin token missing admin_id alias: %v", mc)
	}
	if _, ok := mc["client_id"]; ok {
		t.Fatalf("admin token carries client_id: %v", mc)
	}

	clientToken, err := svc.Issue(&domain.Claims{SubjectID: "c-1", Username: "acme", Realm: domain.RealmClient}, time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	mc = decode(clientToken)
	if mc["client_id"] != "c-1" {
		t.Fatalf("client token missing client_id alias: %v", mc)
	}
	if _, ok := mc["admin_id"]; ok {
		t.Fatalf("client token carries admin_id: %v", mc)
	}
}

func TestTokenService_Expiry(t *testing.T) {
	svc, err := NewTokenService("secret", "HS256", time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	issued := time.Now().UTC()
	svc.now = func() time.Time { return issued }

	token, err := svc.Issue(&domain.Claims{SubjectID: "a-1", Username: "root", Realm: domain.RealmAdmin}, time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Just before expiry.
	svc.now = func() time.Time { return issued.Add(59 * time.Second) }
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("token rejected before expiry: %v", err)
	}

	// After expiry.
	svc.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestTokenService_BadSignature(t *testing.T) {
	svc, _ := NewTokenService("secret", "HS256", time.Minute)
	other, _ := NewTokenService("different-secret", "HS256", time.Minute)

	token, err := other.Issue(&domain.Claims{SubjectID: "a-1", Username: "root", Realm: domain.RealmAdmin}, time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestTokenService_RejectsNoneAlgorithm(t *testing.T) {
	svc, _ := NewTokenService("secret", "HS256", time.Minute)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":      "a-1",
		"username": "root",
		"role":     "admin",
		"exp":      jwt.NewNumericDate(time.Now().Add(time.Minute)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestTokenService_MalformedClaims(t *testing.T) {
	svc, _ := NewTokenService("secret", "HS256", time.Minute)

	// Missing subject and username.
	signed := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"exp":  jwt.NewNumericDate(time.Now().Add(time.Minute)),
	})
	token, err := signed.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing claims, got %v", err)
	}

	// Unknown role claim.
	signed = jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "x",
		"username": "x",
		"role":     "superuser",
		"exp":      jwt.NewNumericDate(time.Now().Add(time.Minute)),
	})
	token, _ = signed.SignedString([]byte("secret"))
	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for unknown role, got %v", err)
	}

	if _, err := svc.Verify("not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage input, got %v", err)
	}
}
