package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/edgerelay/edgerelay/internal/core/domain"
)

// querier is the subset of pgxpool.Pool the repository needs. pgxmock's pool
// satisfies it too, which is how the tests run without a live database.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// IdentityRepository implements ports.IdentityStore over one realm's
// PostgreSQL database. The admin and client realms get independent instances
// over independent pools; the only structural difference between them is the
// table, the ID column, and the client-only company_name column.
type IdentityRepository struct {
	db         querier
	realm      domain.Realm
	table      string
	idCol      string
	hasCompany bool
	selectCols string
}

// NewAdminRepository creates the repository over the admin_users table.
func NewAdminRepository(db querier) *IdentityRepository {
	return newRepository(db, domain.RealmAdmin, "admin_users", "admin_id", false)
}

// NewClientRepository creates the repository over the client_users table.
func NewClientRepository(db querier) *IdentityRepository {
	return newRepository(db, domain.RealmClient, "client_users", "client_id", true)
}

func newRepository(db querier, realm domain.Realm, table, idCol string, hasCompany bool) *IdentityRepository {
	cols := []string{idCol, "username", "password_hash", "full_name"}
	if hasCompany {
		cols = append(cols, "company_name")
	}
	cols = append(cols, "is_active", "created_at", "updated_at")
	return &IdentityRepository{
		db:         db,
		realm:      realm,
		table:      table,
		idCol:      idCol,
		hasCompany: hasCompany,
		selectCols: strings.Join(cols, ", "),
	}
}

// FindActiveByUsername returns the active identity with the given username.
// Deactivated records do not match, so a disabled account fails login exactly
// like an unknown one.
func (r *IdentityRepository) FindActiveByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(
		`SELECT %s FROM %s WHERE username = $1 AND is_active = true`,
		r.selectCols, r.table,
	), username)
	return r.scan(row)
}

// FindByID returns the identity regardless of active flag.
func (r *IdentityRepository) FindByID(ctx context.Context, id string) (*domain.Identity, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s = $1`,
		r.selectCols, r.table, r.idCol,
	), id)
	return r.scan(row)
}

// Insert persists a new identity. Username uniqueness rides on the table's
// unique constraint: a conflicting concurrent insert loses at the database
// and surfaces as domain.ErrDuplicateUsername, never via check-then-insert.
func (r *IdentityRepository) Insert(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	var row pgx.Row
	if r.hasCompany {
		row = r.db.QueryRow(ctx, fmt.Sprintf(
			`INSERT INTO %s (%s, username, password_hash, full_name, company_name, is_active, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING %s`,
			r.table, r.idCol, r.selectCols,
		), identity.ID, identity.Username, identity.PasswordHash, identity.FullName,
			identity.CompanyName, identity.IsActive, identity.CreatedAt, identity.UpdatedAt)
	} else {
		row = r.db.QueryRow(ctx, fmt.Sprintf(
			`INSERT INTO %s (%s, username, password_hash, full_name, is_active, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING %s`,
			r.table, r.idCol, r.selectCols,
		), identity.ID, identity.Username, identity.PasswordHash, identity.FullName,
			identity.IsActive, identity.CreatedAt, identity.UpdatedAt)
	}
	return r.scan(row)
}

// List returns all identities in the realm, newest first.
func (r *IdentityRepository) List(ctx context.Context) ([]domain.Identity, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM %s ORDER BY created_at DESC`,
		r.selectCols, r.table,
	))
	if err != nil {
		return nil, r.classify(err)
	}
	defer rows.Close()

	var identities []domain.Identity
	for rows.Next() {
		identity, err := r.scanFrom(rows)
		if err != nil {
			return nil, r.classify(err)
		}
		identities = append(identities, *identity)
	}
	if err := rows.Err(); err != nil {
		return nil, r.classify(err)
	}
	return identities, nil
}

// Update rewrites the profile fields and refreshes updated_at.
func (r *IdentityRepository) Update(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	var row pgx.Row
	if r.hasCompany {
		row = r.db.QueryRow(ctx, fmt.Sprintf(
			`UPDATE %s SET full_name = $2, company_name = $3, updated_at = now()
			 WHERE %s = $1
			 RETURNING %s`,
			r.table, r.idCol, r.selectCols,
		), identity.ID, identity.FullName, identity.CompanyName)
	} else {
		row = r.db.QueryRow(ctx, fmt.Sprintf(
			`UPDATE %s SET full_name = $2, updated_at = now()
			 WHERE %s = $1
			 RETURNING %s`,
			r.table, r.idCol, r.selectCols,
		), identity.ID, identity.FullName)
	}
	return r.scan(row)
}

// Deactivate clears the active flag, making the record unmatchable at login.
func (r *IdentityRepository) Deactivate(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, fmt.Sprintf(
		`UPDATE %s SET is_active = false, updated_at = now() WHERE %s = $1`,
		r.table, r.idCol,
	), id)
	if err != nil {
		return r.classify(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

func (r *IdentityRepository) scan(row pgx.Row) (*domain.Identity, error) {
	identity, err := r.scanFrom(row)
	if err != nil {
		return nil, r.classify(err)
	}
	return identity, nil
}

func (r *IdentityRepository) scanFrom(row pgx.Row) (*domain.Identity, error) {
	identity := domain.Identity{Realm: r.realm}
	dest := []any{&identity.ID, &identity.Username, &identity.PasswordHash, &identity.FullName}
	if r.hasCompany {
		dest = append(dest, &identity.CompanyName)
	}
	dest = append(dest, &identity.IsActive, &identity.CreatedAt, &identity.UpdatedAt)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &identity, nil
}

// classify re-maps driver errors into the domain taxonomy so nothing
// pgx-specific leaks past the repository boundary.
func (r *IdentityRepository) classify(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrIdentityNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return domain.ErrDuplicateUsername
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
