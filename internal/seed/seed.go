// Package seed guarantees the system is never without an administrator:
// on startup it provisions the configured admin account if no account
// with that username exists. The seeded admin is permanent.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tasklight/tasklight/config"
	"github.com/tasklight/tasklight/internal/core"
	"github.com/tasklight/tasklight/internal/data"
	domainauth "github.com/tasklight/tasklight/internal/domain/auth"
	"github.com/tasklight/tasklight/internal/domain/model"
)

// EnsureAdmin provisions the bootstrap admin account when absent. Losing a
// race against a concurrent boot of another instance is fine: the unique
// constraint makes the second insert fail, and either way an admin exists.
func EnsureAdmin(ctx context.Context, repo core.AccountRepository, cfg config.SeedAdminConfig, logger *slog.Logger) error {
	_, err := repo.GetByUsername(ctx, cfg.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, data.ErrAccountNotFound) {
		return fmt.Errorf("check for seed admin: %w", err)
	}

	account, err := repo.Create(ctx, &model.CreateAccountParams{
		Username: cfg.Username,
		Password: cfg.Password,
		Role:     domainauth.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, data.ErrUsernameTaken) {
			return nil
		}
		return fmt.Errorf("create seed admin: %w", err)
	}

	logger.InfoContext(ctx, "seeded admin account",
		"account_id", account.ID, "username", account.Username)
	return nil
}
