package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/tasklight/tasklight/internal/data/pgxutil"
	"github.com/tasklight/tasklight/internal/domain/model"
	apperrors "github.com/tasklight/tasklight/internal/errors"
)

var (
	// ErrAccountNotFound is returned when an account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrUsernameTaken is returned when an insert collides with an existing
	// username. The UNIQUE constraint is the authoritative guard, so this
	// surfaces even when two provisioning requests race past the caller's
	// precondition check.
	ErrUsernameTaken = errors.New("username already exists")
)

// AccountRepoConfig carries tunables for AccountRepo.
type AccountRepoConfig struct {
	// BcryptCost is the bcrypt work factor. Zero means bcrypt.DefaultCost.
	BcryptCost int
}

// AccountRepo provides database operations for user accounts. It owns
// password hashing and the expiry timestamp: plaintext credentials never
// reach a SQL statement.
type AccountRepo struct {
	DB           *sql.DB
	cost         int
	timeProvider TimeProvider
}

// NewAccountRepo creates a new AccountRepo with the real time provider.
func NewAccountRepo(db *sql.DB, cfg AccountRepoConfig) *AccountRepo {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &AccountRepo{DB: db, cost: cost, timeProvider: &RealTimeProvider{}}
}

// NewAccountRepoWithTimeProvider creates an AccountRepo with a custom time
// provider (useful for tests).
func NewAccountRepoWithTimeProvider(db *sql.DB, cfg AccountRepoConfig, tp TimeProvider) *AccountRepo {
	r := NewAccountRepo(db, cfg)
	r.timeProvider = tp
	return r
}

const accountColumns = `id, username, credential_hash, role, created_at, expires_at`

// Create hashes the password and inserts the account in a single
// constrained statement. ExpiresAt is created_at plus the TTL when a
// positive TTL is given, NULL otherwise.
func (r *AccountRepo) Create(ctx context.Context, params *model.CreateAccountParams) (*model.Account, error) {
	if params == nil {
		return nil, errors.New("create account params are required")
	}
	if err := params.Validate(); err != nil {
		return nil, apperrors.ValidationField("account", err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), r.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	createdAt := r.timeProvider.Now().UTC()
	expiry := model.Permanent()
	if params.TTLMinutes != nil && *params.TTLMinutes > 0 {
		expiry = model.ExpiresAt(createdAt.Add(time.Duration(*params.TTLMinutes) * time.Minute))
	}

	var out model.Account
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, `
			INSERT INTO accounts (id, username, credential_hash, role, created_at, expires_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+accountColumns,
			uuid.NewString(),
			params.Username,
			string(hash),
			params.Role,
			createdAt,
			expiry,
		)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Account])
		return qErr
	}); err != nil {
		return nil, r.mapWriteErr(err)
	}
	return &out, nil
}

// GetByID retrieves an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*model.Account, error) {
	return r.getByQuery(ctx, accountGetByIDQuery, "failed to get account by id", id)
}

// GetByUsername retrieves an account by exact, case-sensitive username.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	return r.getByQuery(ctx, accountGetByUsernameQuery, "failed to get account by username", username)
}

// List retrieves all accounts, newest first.
func (r *AccountRepo) List(ctx context.Context) ([]*model.Account, error) {
	var rowsOut []model.Account
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, accountListQuery)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Account])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	res := make([]*model.Account, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Delete removes an account by id. Deleting a missing id reports false
// without error.
func (r *AccountRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, execErr := conn.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
		if execErr != nil {
			return execErr
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete account: %w", err)
	}
	return rows > 0, nil
}

// DeleteIfExpired atomically deletes the account only when its expiry has
// passed. The condition lives in the statement itself so a concurrent
// reap or read cannot observe a half-applied state.
func (r *AccountRepo) DeleteIfExpired(ctx context.Context, id string, now time.Time) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, execErr := conn.Exec(ctx,
			`DELETE FROM accounts WHERE id = $1 AND expires_at IS NOT NULL AND expires_at <= $2`,
			id, now.UTC())
		if execErr != nil {
			return execErr
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete expired account: %w", err)
	}
	return rows > 0, nil
}

// DeleteExpired removes every account whose expiry has passed and returns
// the number removed. Strict comparison: an account at exactly its expiry
// instant is still live, matching Expiry.Expired.
func (r *AccountRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, execErr := conn.Exec(ctx,
			`DELETE FROM accounts WHERE expires_at IS NOT NULL AND expires_at < $1`,
			now.UTC())
		if execErr != nil {
			return execErr
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired accounts: %w", err)
	}
	return rows, nil
}

// --- helpers ---

const (
	accountGetByIDQuery = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1`

	accountGetByUsernameQuery = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE username = $1`

	accountListQuery = `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY created_at DESC`
)

func (r *AccountRepo) getByQuery(ctx context.Context, q, errMsg string, args ...any) (*model.Account, error) {
	var account model.Account
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, q, args...)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		account, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Account])
		return qErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &account, nil
}

func (r *AccountRepo) mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrUsernameTaken
	}
	return apperrors.MapDBError(err)
}
