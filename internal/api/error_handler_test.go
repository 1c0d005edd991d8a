package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/edgerelay/edgerelay/internal/core/domain"
)

func handleError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return rec.Code, body.Error
}

func TestHTTPErrorHandler_DomainTaxonomy(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "invalid authentication credentials"},
		{domain.ErrWrongRealm, http.StatusForbidden, "access forbidden"},
		{domain.ErrDuplicateUsername, http.StatusBadRequest, "username already exists"},
		{domain.ErrWeakPassword, http.StatusBadRequest, "password does not meet strength requirements"},
		{domain.ErrIdentityNotFound, http.StatusNotFound, "not found"},
		{domain.ErrStoreUnavailable, http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			code, msg := handleError(t, tc.err)
			if code != tc.wantCode || msg != tc.wantMsg {
				t.Fatalf("got (%d, %q), want (%d, %q)", code, msg, tc.wantCode, tc.wantMsg)
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedErrorsStillMatch(t *testing.T) {
	wrapped := fmt.Errorf("repository: %w", domain.ErrDuplicateUsername)
	code, msg := handleError(t, wrapped)
	if code != http.StatusBadRequest || msg != "username already exists" {
		t.Fatalf("wrapped sentinel not matched: (%d, %q)", code, msg)
	}
}

func TestHTTPErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	code, msg := handleError(t, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"))
	if code != http.StatusUnauthorized || msg != "missing authorization header" {
		t.Fatalf("echo error not passed through: (%d, %q)", code, msg)
	}
}

func TestHTTPErrorHandler_UnknownErrorsStayGeneric(t *testing.T) {
	code, msg := handleError(t, errors.New("pq: deadlock detected on table admin_users"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	// Internal details never reach the client.
	if msg != "internal server error" {
		t.Fatalf("leaked internal error detail: %q", msg)
	}
}
