package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	domainauth "github.com/tasklight/tasklight/internal/domain/auth"
)

// Expiry is the lifetime bound of an account: either permanent or expiring
// at a fixed instant. It is a closed variant so both lifecycle branches are
// explicit at every use site, and it maps to a nullable timestamp column
// via sql.Scanner / driver.Valuer.
type Expiry struct {
	at  time.Time
	set bool
}

// Permanent returns the never-expiring lifetime.
func Permanent() Expiry { return Expiry{} }

// ExpiresAt returns a lifetime ending at t.
func ExpiresAt(t time.Time) Expiry { return Expiry{at: t, set: true} }

// IsPermanent reports whether the account never expires.
func (e Expiry) IsPermanent() bool { return !e.set }

// At returns the expiry instant and whether one is set.
func (e Expiry) At() (time.Time, bool) { return e.at, e.set }

// Expired reports whether the lifetime has lapsed as of now.
// A permanent lifetime never expires.
func (e Expiry) Expired(now time.Time) bool { return e.set && now.After(e.at) }

// Scan implements sql.Scanner for nullable timestamp columns.
func (e *Expiry) Scan(src any) error {
	if src == nil {
		*e = Permanent()
		return nil
	}
	t, ok := src.(time.Time)
	if !ok {
		return fmt.Errorf("cannot scan %T into Expiry", src)
	}
	*e = ExpiresAt(t)
	return nil
}

// Value implements driver.Valuer; permanent encodes as NULL.
func (e Expiry) Value() (driver.Value, error) {
	if !e.set {
		return nil, nil
	}
	return e.at, nil
}

// String renders the lifetime for display.
func (e Expiry) String() string {
	if !e.set {
		return "never"
	}
	return e.at.Format(time.RFC3339)
}

// MarshalJSON encodes permanent as null and an expiring lifetime as its
// RFC 3339 instant.
func (e Expiry) MarshalJSON() ([]byte, error) {
	if !e.set {
		return []byte("null"), nil
	}
	return json.Marshal(e.at)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (e *Expiry) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*e = Permanent()
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(b, &t); err != nil {
		return err
	}
	*e = ExpiresAt(t)
	return nil
}

// Account is a persisted user account. CredentialHash holds the bcrypt
// hash of the password; the plaintext is never stored.
type Account struct {
	ID             string          `db:"id"              json:"id"`
	Username       string          `db:"username"        json:"username"`
	CredentialHash string          `db:"credential_hash" json:"-"`
	Role           domainauth.Role `db:"role"            json:"role"`
	CreatedAt      time.Time       `db:"created_at"      json:"created_at"`
	ExpiresAt      Expiry          `db:"expires_at"      json:"expires_at"`
}

// Identity returns the request-scoped identity for this account.
func (a *Account) Identity() domainauth.Identity {
	return domainauth.Identity{ID: a.ID, Username: a.Username, Role: a.Role}
}

// CreateAccountParams carries inputs for inserting a new account.
// Password is plaintext at this point; the repository hashes it before
// anything touches storage. TTLMinutes nil or non-positive means permanent.
type CreateAccountParams struct {
	Username   string
	Password   string
	Role       domainauth.Role
	TTLMinutes *int
}

// Validate checks structural requirements prior to insert.
func (p *CreateAccountParams) Validate() error {
	if strings.TrimSpace(p.Username) == "" {
		return errors.New("username is required")
	}
	if p.Password == "" {
		return errors.New("password is required")
	}
	if _, err := domainauth.ParseRole(string(p.Role)); err != nil {
		return err
	}
	return nil
}
