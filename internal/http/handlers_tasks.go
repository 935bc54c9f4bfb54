package httpx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	domainauth "github.com/tasklight/tasklight/internal/domain/auth"
	"github.com/tasklight/tasklight/internal/domain/model"
	apperrors "github.com/tasklight/tasklight/internal/errors"
	"github.com/tasklight/tasklight/internal/service"
)

// TasksService defines the task service operations the handlers need.
type TasksService interface {
	Create(ctx context.Context, actor domainauth.Identity, params model.CreateTaskParams) (*model.Task, error)
	List(ctx context.Context, actor domainauth.Identity) ([]model.TaskWithAccess, error)
	GetContent(ctx context.Context, id int64) (string, error)
	Toggle(ctx context.Context, actor domainauth.Identity, id int64) (*model.Task, error)
	Delete(ctx context.Context, actor domainauth.Identity, id int64) error
}

// TaskHandlers provides HTTP handlers for the shared task list.
type TaskHandlers struct {
	Svc    TasksService
	Logger *slog.Logger
}

func (h *TaskHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// List returns every task annotated with the caller's manage hint.
// GET /api/todos.
func (h *TaskHandlers) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Svc.List(r.Context(), IdentityFromContext(r.Context()))
	if err != nil {
		h.logger().ErrorContext(r.Context(), "list tasks failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: errors.New("failed to list tasks")})
		return
	}
	WriteJSON(w, http.StatusOK, tasks)
}

type createTaskRequest struct {
	Content string `json:"content"`
}

// Create adds a task owned by the caller.
// POST /api/todos.
func (h *TaskHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	task, err := h.Svc.Create(r.Context(), IdentityFromContext(r.Context()), model.CreateTaskParams{Content: req.Content})
	if err != nil {
		h.writeTaskError(w, r, err, "create_failed")
		return
	}
	WriteJSON(w, http.StatusCreated, task)
}

// CreateForm handles the browser task form.
// POST /todos.
func (h *TaskHandlers) CreateForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	_, err := h.Svc.Create(r.Context(), IdentityFromContext(r.Context()), model.CreateTaskParams{
		Content: r.PostFormValue("content"),
	})
	if err != nil && !apperrors.IsValidation(err) {
		// Empty content from the form just reloads the page; the form is
		// the validation surface there.
		h.writeTaskError(w, r, err, "create_failed")
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// GetContent returns a single task's raw text.
// GET /api/todos/{id}.
func (h *TaskHandlers) GetContent(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	content, err := h.Svc.GetContent(r.Context(), id)
	if err != nil {
		h.writeTaskError(w, r, err, "get_failed")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, content); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}

// Toggle flips a task's completion state.
// PATCH /api/todos/{id}/toggle.
func (h *TaskHandlers) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	task, err := h.Svc.Toggle(r.Context(), IdentityFromContext(r.Context()), id)
	if err != nil {
		h.writeTaskError(w, r, err, "toggle_failed")
		return
	}
	WriteJSON(w, http.StatusOK, task)
}

// Delete removes a task.
// DELETE /api/todos/{id}.
func (h *TaskHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Delete(r.Context(), IdentityFromContext(r.Context()), id); err != nil {
		h.writeTaskError(w, r, err, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_id", Err: errors.New("task id must be an integer")})
		return 0, false
	}
	return id, true
}

func (h *TaskHandlers) writeTaskError(w http.ResponseWriter, r *http.Request, err error, fallbackCode string) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "task_not_found", Err: err})
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: "forbidden", Err: err})
	case apperrors.IsValidation(err):
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
	default:
		h.logger().ErrorContext(r.Context(), "task operation failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: fallbackCode, Err: errors.New("internal error")})
	}
}
