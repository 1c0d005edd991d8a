package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/edgerelay/edgerelay/internal/core/domain"
)

var clientCols = []string{"client_id", "username", "password_hash", "full_name", "company_name", "is_active", "created_at", "updated_at"}
var adminCols = []string{"admin_id", "username", "password_hash", "full_name", "is_active", "created_at", "updated_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func expectationsMet(t *testing.T, mock pgxmock.PgxPoolIface) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unfulfilled expectations: %v", err)
	}
}

func TestIdentityRepository_FindActiveByUsername(t *testing.T) {
	mock := newMock(t)
	repo := NewClientRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .+ FROM client_users WHERE username = \$1 AND is_active = true`).
		WithArgs("acme").
		WillReturnRows(pgxmock.NewRows(clientCols).
			AddRow("c-1", "acme", "$2a$10$hash", "ACME Operator", "ACME Corp", true, now, now))

	identity, err := repo.FindActiveByUsername(context.Background(), "acme")
	if err != nil {
		t.Fatalf("FindActiveByUsername: %v", err)
	}
	if identity.ID != "c-1" || identity.Username != "acme" || identity.CompanyName != "ACME Corp" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if identity.Realm != domain.RealmClient {
		t.Fatalf("expected client realm, got %s", identity.Realm)
	}
	expectationsMet(t, mock)
}

func TestIdentityRepository_FindActiveByUsername_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewAdminRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM admin_users WHERE username = \$1 AND is_active = true`).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows(adminCols))

	if _, err := repo.FindActiveByUsername(context.Background(), "ghost"); !errors.Is(err, domain.ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestIdentityRepository_Insert_DuplicateUsername(t *testing.T) {
	mock := newMock(t)
	repo := NewClientRepository(mock)
	now := time.Now().UTC()

	// 23505 unique_violation from the username constraint.
	mock.ExpectQuery(`INSERT INTO client_users`).
		WithArgs("c-1", "acme", "hash", "ACME Operator", "ACME Corp", true, now, now).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "client_users_username_key"})

	_, err := repo.Insert(context.Background(), &domain.Identity{
		ID:           "c-1",
		Username:     "acme",
		PasswordHash: "hash",
		FullName:     "ACME Operator",
		CompanyName:  "ACME Corp",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestIdentityRepository_Insert_ReturnsStoredRow(t *testing.T) {
	mock := newMock(t)
	repo := NewAdminRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO admin_users`).
		WithArgs("a-1", "root", "hash", "Root Admin", true, now, now).
		WillReturnRows(pgxmock.NewRows(adminCols).
			AddRow("a-1", "root", "hash", "Root Admin", true, now, now))

	created, err := repo.Insert(context.Background(), &domain.Identity{
		ID:           "a-1",
		Username:     "root",
		PasswordHash: "hash",
		FullName:     "Root Admin",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if created.ID != "a-1" || created.Realm != domain.RealmAdmin {
		t.Fatalf("unexpected identity: %+v", created)
	}
	expectationsMet(t, mock)
}

func TestIdentityRepository_List(t *testing.T) {
	mock := newMock(t)
	repo := NewClientRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .+ FROM client_users ORDER BY created_at DESC`).
		WillReturnRows(pgxmock.NewRows(clientCols).
			AddRow("c-2", "newer", "h2", "Newer", "B Corp", true, now, now).
			AddRow("c-1", "older", "h1", "Older", "A Corp", false, now.Add(-time.Hour), now))

	identities, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(identities) != 2 {
		t.Fatalf("expected 2 identities, got %d", len(identities))
	}
	if identities[0].ID != "c-2" || identities[1].ID != "c-1" {
		t.Fatalf("unexpected order: %+v", identities)
	}
	expectationsMet(t, mock)
}

func TestIdentityRepository_Deactivate(t *testing.T) {
	mock := newMock(t)
	repo := NewClientRepository(mock)

	mock.ExpectExec(`UPDATE client_users SET is_active = false`).
		WithArgs("c-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.Deactivate(context.Background(), "c-1"); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	mock.ExpectExec(`UPDATE client_users SET is_active = false`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	if err := repo.Deactivate(context.Background(), "missing"); !errors.Is(err, domain.ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestIdentityRepository_ClassifiesStoreFailures(t *testing.T) {
	mock := newMock(t)
	repo := NewAdminRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM admin_users WHERE admin_id = \$1`).
		WithArgs("a-1").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.FindByID(context.Background(), "a-1")
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	expectationsMet(t, mock)
}
