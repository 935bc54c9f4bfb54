// Package ports defines interfaces (hexagonal ports) for auth-related
// behavior. Implementations live in internal/adapters; orchestration in
// internal/service.
package ports

// SessionCodec signs and verifies the opaque session token delivered in
// the client cookie. The token carries only the account id; authenticity
// comes from a server-held secret. Decode must fail closed: a forged or
// malformed token is an error, never a panic.
type SessionCodec interface {
	Encode(accountID string) (string, error)
	Decode(token string) (accountID string, err error)
}
