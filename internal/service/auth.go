package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/tasklight/tasklight/internal/core"
	"github.com/tasklight/tasklight/internal/data"
	domainauth "github.com/tasklight/tasklight/internal/domain/auth"
	"github.com/tasklight/tasklight/internal/ports"
)

var (
	// ErrInvalidCredentials is returned on login with an unknown username
	// or a wrong password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountExpired is returned on login against a TTL-lapsed account,
	// distinct from ErrInvalidCredentials so the user understands why a
	// previously working login stopped working. The account is deleted as
	// a side effect.
	ErrAccountExpired = errors.New("account expired")
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Accounts core.AccountRepository
	Tokens   ports.SessionCodec
	Logger   *slog.Logger
	// Clock is optional; defaults to the real time provider.
	Clock data.TimeProvider
}

// AuthService verifies credentials and resolves signed session tokens into
// request identities, enforcing account expiry at the boundary: an expired
// account is deleted on sight, before any authorization decision can use it.
type AuthService struct {
	accounts core.AccountRepository
	tokens   ports.SessionCodec
	logger   *slog.Logger
	clock    data.TimeProvider
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.Accounts == nil {
		return nil, errors.New("AccountRepository is required")
	}
	if opts.Tokens == nil {
		return nil, errors.New("SessionCodec is required")
	}
	clock := opts.Clock
	if clock == nil {
		clock = &data.RealTimeProvider{}
	}
	return &AuthService{
		accounts: opts.Accounts,
		tokens:   opts.Tokens,
		logger:   opts.Logger,
		clock:    clock,
	}, nil
}

// LoginResult carries the outcome of a successful credential check.
type LoginResult struct {
	Identity domainauth.Identity
	Token    string
}

// Login verifies a username/password pair and issues a signed session
// token. Expiry is checked here too, not just on later requests: logging
// in to a lapsed account deletes it and fails with ErrAccountExpired.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, data.ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.CredentialHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if account.ExpiresAt.Expired(s.clock.Now()) {
		if _, delErr := s.accounts.DeleteIfExpired(ctx, account.ID, s.clock.Now()); delErr != nil {
			s.log().WarnContext(ctx, "delete expired account on login failed",
				"account_id", account.ID, "error", delErr)
		}
		return nil, ErrAccountExpired
	}

	token, err := s.tokens.Encode(account.ID)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	return &LoginResult{Identity: account.Identity(), Token: token}, nil
}

// Resolution is the outcome of resolving an inbound session token.
// ClearSession instructs the transport layer to drop the client cookie
// because the token no longer references a usable account.
type Resolution struct {
	Identity     domainauth.Identity
	ClearSession bool
}

// Resolve turns an inbound signed token into a verified identity. Every
// failure mode degrades to anonymous rather than erroring: missing token,
// bad signature, unknown account, or a lapsed lifetime (which also deletes
// the account synchronously, so a stale signed token can never vouch for
// an expired identity).
func (s *AuthService) Resolve(ctx context.Context, token string) (Resolution, error) {
	if token == "" {
		return Resolution{Identity: domainauth.Anonymous()}, nil
	}

	accountID, err := s.tokens.Decode(token)
	if err != nil {
		// Forged or malformed token: fail closed, have the caller drop the cookie.
		return Resolution{Identity: domainauth.Anonymous(), ClearSession: true}, nil
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, data.ErrAccountNotFound) {
			return Resolution{Identity: domainauth.Anonymous(), ClearSession: true}, nil
		}
		return Resolution{}, fmt.Errorf("look up account: %w", err)
	}

	if account.ExpiresAt.Expired(s.clock.Now()) {
		if _, delErr := s.accounts.DeleteIfExpired(ctx, account.ID, s.clock.Now()); delErr != nil {
			s.log().WarnContext(ctx, "delete expired account on resolve failed",
				"account_id", account.ID, "error", delErr)
		}
		return Resolution{Identity: domainauth.Anonymous(), ClearSession: true}, nil
	}

	return Resolution{Identity: account.Identity()}, nil
}

func (s *AuthService) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
