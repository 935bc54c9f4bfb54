// Package core defines the repository interfaces (data-access ports) used
// by the service layer. Implementations live in internal/data.
package core

import (
	"context"
	"time"

	"github.com/tasklight/tasklight/internal/domain/model"
)

// AccountRepository persists user accounts. It owns username uniqueness
// (enforced by the storage constraint, not check-then-act), password
// hashing, and the expiry timestamp.
type AccountRepository interface {
	// Create hashes the password and inserts the account. A duplicate
	// username surfaces as data.ErrUsernameTaken regardless of any
	// pre-check the caller performed.
	Create(ctx context.Context, params *model.CreateAccountParams) (*model.Account, error)

	GetByID(ctx context.Context, id string) (*model.Account, error)
	GetByUsername(ctx context.Context, username string) (*model.Account, error)
	List(ctx context.Context) ([]*model.Account, error)

	// Delete removes the account by id. Deleting a missing id is a no-op
	// and reports false.
	Delete(ctx context.Context, id string) (bool, error)

	// DeleteIfExpired atomically deletes the account only when its expiry
	// has passed as of now. Reports whether a row was removed.
	DeleteIfExpired(ctx context.Context, id string, now time.Time) (bool, error)

	// DeleteExpired removes every account whose expiry has passed as of
	// now and returns the number removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TaskRepository persists task list entries. The identity core only
// supplies and consults OwnerID; task content semantics live here.
type TaskRepository interface {
	Create(ctx context.Context, params *model.CreateTaskParams) (*model.Task, error)
	GetByID(ctx context.Context, id int64) (*model.Task, error)
	List(ctx context.Context) ([]*model.Task, error)
	Toggle(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ReaperRepository is the narrow surface the expiry reaper needs.
type ReaperRepository interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
