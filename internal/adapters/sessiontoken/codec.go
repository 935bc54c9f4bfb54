// Package sessiontoken implements the signed session token carried in the
// client cookie. Tokens are HMAC-signed JWTs holding only the account id;
// they are signed, not encrypted, and carry no expiry of their own —
// account lifetime is enforced against the credential store at resolve
// time, not baked into the token.
package sessiontoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token is malformed, tampered with,
// or signed with the wrong key or method.
var ErrInvalidToken = errors.New("invalid session token")

// Codec signs and verifies session tokens with a server-held HS256 secret.
type Codec struct {
	secret []byte
	issuer string
}

// NewCodec constructs a Codec. The secret must be non-empty; there is no
// safe default for a signing key.
func NewCodec(secret, issuer string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	return &Codec{secret: []byte(secret), issuer: issuer}, nil
}

// Encode issues a signed token whose subject is the account id.
func (c *Codec) Encode(accountID string) (string, error) {
	if accountID == "" {
		return "", errors.New("account id is required")
	}
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:  accountID,
		Issuer:   c.issuer,
		IssuedAt: jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies signature and issuer and returns the account id.
// Any verification failure collapses to ErrInvalidToken so callers can
// degrade to anonymous without inspecting causes.
func (c *Codec) Decode(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if c.issuer != "" && claims.Issuer != c.issuer {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
