// Package auth contains domain-level types for identity and authorization.
// It is pure and free of storage/transport concerns.
package auth

import "fmt"

// Role represents an application authorization role.
// Kept in string form for easy persistence and rendering.
// Valid values are defined as constants below; anything else is
// rejected at construction time by ParseRole.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole validates a raw role string against the closed set of roles.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), nil
	default:
		return "", fmt.Errorf("invalid role: %q (valid options: admin, user)", s)
	}
}

// Identity is the request-scoped principal resolved from a session token.
// The zero value is the anonymous identity.
type Identity struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// Anonymous returns the unauthenticated identity.
func Anonymous() Identity { return Identity{} }

// IsAnonymous reports whether the identity is unauthenticated.
func (i Identity) IsAnonymous() bool { return i.ID == "" }

// IsAdmin reports whether the identity holds the admin role.
func (i Identity) IsAdmin() bool { return !i.IsAnonymous() && i.Role == RoleAdmin }

// CanManage is the authorization predicate for mutating a resource owned
// by ownerID (nil for ownerless resources). Anonymous identities can never
// manage anything, admins manage everything, and users manage only the
// resources they own. Read access is not gated here; it is unconditional
// at the handler layer.
func (i Identity) CanManage(ownerID *string) bool {
	switch {
	case i.IsAnonymous():
		return false
	case i.Role == RoleAdmin:
		return true
	default:
		return ownerID != nil && *ownerID == i.ID
	}
}
