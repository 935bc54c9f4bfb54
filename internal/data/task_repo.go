package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tasklight/tasklight/internal/data/pgxutil"
	"github.com/tasklight/tasklight/internal/domain/model"
	apperrors "github.com/tasklight/tasklight/internal/errors"
)

// ErrTaskNotFound is returned when a task is not found.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepo provides database operations for task list entries.
type TaskRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewTaskRepo creates a new TaskRepo with the real time provider.
func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewTaskRepoWithTimeProvider creates a TaskRepo with a custom time provider.
func NewTaskRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *TaskRepo {
	return &TaskRepo{DB: db, timeProvider: tp}
}

const taskColumns = `id, content, owner_id, is_completed, created_at`

// Create inserts a new task.
func (r *TaskRepo) Create(ctx context.Context, params *model.CreateTaskParams) (*model.Task, error) {
	if params == nil {
		return nil, errors.New("create task params are required")
	}
	if err := params.Validate(); err != nil {
		return nil, apperrors.ValidationField("content", err.Error())
	}

	var out model.Task
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, `
			INSERT INTO tasks (content, owner_id, created_at)
			VALUES ($1, $2, $3)
			RETURNING `+taskColumns,
			strings.TrimSpace(params.Content),
			params.OwnerID,
			r.timeProvider.Now().UTC(),
		)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Task])
		return qErr
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a task by id.
func (r *TaskRepo) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, `
			SELECT `+taskColumns+`
			FROM tasks
			WHERE id = $1`, id)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		task, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Task])
		return qErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task by id: %w", err)
	}
	return &task, nil
}

// List retrieves all tasks, newest first.
func (r *TaskRepo) List(ctx context.Context) ([]*model.Task, error) {
	var rowsOut []model.Task
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+taskColumns+`
			FROM tasks
			ORDER BY created_at DESC, id DESC`)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Task])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	res := make([]*model.Task, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Toggle flips the completion flag. Reports false when the id is unknown.
func (r *TaskRepo) Toggle(ctx context.Context, id int64) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, execErr := conn.Exec(ctx,
			`UPDATE tasks SET is_completed = NOT is_completed WHERE id = $1`, id)
		if execErr != nil {
			return execErr
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to toggle task: %w", err)
	}
	return rows > 0, nil
}

// Delete removes a task by id. Reports false when the id is unknown.
func (r *TaskRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, execErr := conn.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
		if execErr != nil {
			return execErr
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	return rows > 0, nil
}
