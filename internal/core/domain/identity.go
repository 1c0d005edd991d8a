package domain

import (
	"errors"
	"time"
)

// Realm identifies one of the two disjoint identity universes. Each realm has
// its own relational store and its own token role claim; a token minted for
// one realm is never valid in the other.
type Realm string

const (
	RealmAdmin  Realm = "admin"
	RealmClient Realm = "client"
)

// Valid reports whether r is one of the known realms.
func (r Realm) Valid() bool {
	return r == RealmAdmin || r == RealmClient
}

// Identity models an authenticated actor in either realm. CompanyName is only
// populated for client identities. PasswordHash is never serialized.
type Identity struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	CompanyName  string    `json:"company_name,omitempty"`
	Realm        Realm     `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrWrongRealm         = errors.New("token realm not allowed here")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrWeakPassword       = errors.New("password does not meet strength requirements")
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrStoreUnavailable   = errors.New("identity store unavailable")
)
