package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tasklight/tasklight/internal/core"
	"github.com/tasklight/tasklight/internal/data"
	domainauth "github.com/tasklight/tasklight/internal/domain/auth"
	"github.com/tasklight/tasklight/internal/domain/model"
	apperrors "github.com/tasklight/tasklight/internal/errors"
)

var (
	// ErrDuplicateUsername is returned when provisioning collides with an
	// existing live account of the same name.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrForbidden is returned when the caller's role does not permit the
	// requested operation.
	ErrForbidden = errors.New("forbidden")
)

// AccountServiceOptions groups dependencies for AccountService.
type AccountServiceOptions struct {
	Accounts core.AccountRepository
	Logger   *slog.Logger
	// DefaultUserTTLMinutes applies to newly provisioned user-role accounts
	// that don't request an explicit lifetime.
	DefaultUserTTLMinutes int
}

// AccountService provisions and administers accounts. All operations are
// admin-only; the role check happens here so every transport gets the same
// policy.
type AccountService struct {
	accounts       core.AccountRepository
	logger         *slog.Logger
	defaultUserTTL int
}

// NewAccountService constructs a new AccountService.
func NewAccountService(opts AccountServiceOptions) (*AccountService, error) {
	if opts.Accounts == nil {
		return nil, errors.New("AccountRepository is required")
	}
	ttl := opts.DefaultUserTTLMinutes
	if ttl < 1 {
		ttl = 1
	}
	return &AccountService{
		accounts:       opts.Accounts,
		logger:         opts.Logger,
		defaultUserTTL: ttl,
	}, nil
}

// Provision creates an account on behalf of an admin caller. Lifetime
// policy: an explicit positive TTL always wins; otherwise user accounts
// get the configured default and admin accounts are permanent. A duplicate
// username surfaces as ErrDuplicateUsername whether it is caught by the
// repo's unique constraint or raced in between.
func (s *AccountService) Provision(ctx context.Context, actor domainauth.Identity, params model.CreateAccountParams) (*model.Account, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := params.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	// Friendly precheck only; the unique constraint remains the
	// authoritative guard against the provisioning race.
	if _, err := s.accounts.GetByUsername(ctx, params.Username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, data.ErrAccountNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	// Only a positive explicit TTL counts as a request; zero or negative
	// means "no TTL given" and falls back to the role policy.
	if params.TTLMinutes != nil && *params.TTLMinutes <= 0 {
		params.TTLMinutes = nil
	}
	if params.TTLMinutes == nil && params.Role == domainauth.RoleUser {
		ttl := s.defaultUserTTL
		params.TTLMinutes = &ttl
	}

	account, err := s.accounts.Create(ctx, &params)
	if err != nil {
		if errors.Is(err, data.ErrUsernameTaken) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.log().InfoContext(ctx, "account provisioned",
		"account_id", account.ID,
		"username", account.Username,
		"role", account.Role,
		"permanent", account.ExpiresAt.IsPermanent())
	return account, nil
}

// List returns all accounts, newest last. Admin-only.
func (s *AccountService) List(ctx context.Context, actor domainauth.Identity) ([]*model.Account, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// Delete removes an account by id. Admin-only. Deleting an absent account
// is reported via data.ErrAccountNotFound.
func (s *AccountService) Delete(ctx context.Context, actor domainauth.Identity, id string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	deleted, err := s.accounts.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if !deleted {
		return data.ErrAccountNotFound
	}
	s.log().InfoContext(ctx, "account deleted", "account_id", id, "actor", actor.Username)
	return nil
}

func (s *AccountService) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
