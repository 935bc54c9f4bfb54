package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tasklight/tasklight/internal/core"
	"github.com/tasklight/tasklight/internal/data"
	domainauth "github.com/tasklight/tasklight/internal/domain/auth"
	"github.com/tasklight/tasklight/internal/domain/model"
	apperrors "github.com/tasklight/tasklight/internal/errors"
)

// ErrTaskNotFound is returned for operations against a missing task id.
var ErrTaskNotFound = errors.New("task not found")

// TaskServiceOptions groups dependencies for TaskService.
type TaskServiceOptions struct {
	Tasks core.TaskRepository
}

// TaskService implements the shared task list. Reads are open to everyone
// including anonymous visitors; every mutation re-evaluates the ownership
// predicate server-side regardless of what the client was shown.
type TaskService struct {
	tasks core.TaskRepository
}

// NewTaskService constructs a new TaskService.
func NewTaskService(opts TaskServiceOptions) (*TaskService, error) {
	if opts.Tasks == nil {
		return nil, errors.New("TaskRepository is required")
	}
	return &TaskService{tasks: opts.Tasks}, nil
}

// Create adds a task owned by the calling identity. Anonymous callers are
// rejected.
func (s *TaskService) Create(ctx context.Context, actor domainauth.Identity, params model.CreateTaskParams) (*model.Task, error) {
	if actor.IsAnonymous() {
		return nil, ErrForbidden
	}
	if err := params.Validate(); err != nil {
		return nil, apperrors.ValidationField("content", err.Error())
	}
	params.OwnerID = &actor.ID
	task, err := s.tasks.Create(ctx, &params)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// List returns every task in creation order, each annotated with whether
// the calling identity may manage it. The annotation is a display hint;
// Toggle and Delete re-check on their own.
func (s *TaskService) List(ctx context.Context, actor domainauth.Identity) ([]model.TaskWithAccess, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	out := make([]model.TaskWithAccess, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, model.TaskWithAccess{
			Task:      *t,
			CanManage: actor.CanManage(t.OwnerID),
		})
	}
	return out, nil
}

// GetContent returns a single task's text. Readable by anyone.
func (s *TaskService) GetContent(ctx context.Context, id int64) (string, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrTaskNotFound) {
			return "", ErrTaskNotFound
		}
		return "", fmt.Errorf("get task: %w", err)
	}
	return task.Content, nil
}

// Toggle flips a task's completion state if the caller owns it or is an
// admin.
func (s *TaskService) Toggle(ctx context.Context, actor domainauth.Identity, id int64) (*model.Task, error) {
	task, err := s.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	toggled, err := s.tasks.Toggle(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	if !toggled {
		return nil, ErrTaskNotFound
	}
	task.Completed = !task.Completed
	return task, nil
}

// Delete removes a task if the caller owns it or is an admin.
func (s *TaskService) Delete(ctx context.Context, actor domainauth.Identity, id int64) error {
	task, err := s.authorize(ctx, actor, id)
	if err != nil {
		return err
	}
	deleted, err := s.tasks.Delete(ctx, task.ID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !deleted {
		return ErrTaskNotFound
	}
	return nil
}

// authorize loads the task and applies the ownership predicate. Missing
// task is reported before the permission check so callers can't probe
// which ids exist behind a 403.
func (s *TaskService) authorize(ctx context.Context, actor domainauth.Identity, id int64) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	if !actor.CanManage(task.OwnerID) {
		return nil, ErrForbidden
	}
	return task, nil
}
