package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/tasklight/tasklight/internal/data"
	domainauth "github.com/tasklight/tasklight/internal/domain/auth"
	"github.com/tasklight/tasklight/internal/domain/model"
	apperrors "github.com/tasklight/tasklight/internal/errors"
	"github.com/tasklight/tasklight/internal/service"
)

// AccountsService defines the account administration operations the
// handlers need.
type AccountsService interface {
	Provision(ctx context.Context, actor domainauth.Identity, params model.CreateAccountParams) (*model.Account, error)
	List(ctx context.Context, actor domainauth.Identity) ([]*model.Account, error)
	Delete(ctx context.Context, actor domainauth.Identity, id string) error
}

// AccountHandlers provides HTTP handlers for account administration.
// Routes using them sit behind RequireAdmin; the service re-checks anyway.
type AccountHandlers struct {
	Svc    AccountsService
	Logger *slog.Logger
}

func (h *AccountHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// List returns all accounts.
// GET /api/admin/users.
func (h *AccountHandlers) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Svc.List(r.Context(), IdentityFromContext(r.Context()))
	if err != nil {
		h.writeAccountError(w, r, err, "list_failed")
		return
	}
	WriteJSON(w, http.StatusOK, accounts)
}

type createAccountRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	TTLMinutes *int   `json:"ttl_minutes"`
}

// Create provisions a new account.
// POST /api/admin/users.
func (h *AccountHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	role, err := domainauth.ParseRole(req.Role)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_role", Err: err})
		return
	}

	account, err := h.Svc.Provision(r.Context(), IdentityFromContext(r.Context()), model.CreateAccountParams{
		Username:   req.Username,
		Password:   req.Password,
		Role:       role,
		TTLMinutes: req.TTLMinutes,
	})
	if err != nil {
		h.writeAccountError(w, r, err, "provision_failed")
		return
	}
	WriteJSON(w, http.StatusCreated, account)
}

// CreateForm handles the browser admin-panel form.
// POST /admin/users.
func (h *AccountHandlers) CreateForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	role, err := domainauth.ParseRole(r.PostFormValue("role"))
	if err != nil {
		http.Redirect(w, r, "/admin?error=invalid_role", http.StatusFound)
		return
	}

	var ttl *int
	if raw := r.PostFormValue("ttl_minutes"); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n < 1 {
			http.Redirect(w, r, "/admin?error=invalid_ttl", http.StatusFound)
			return
		}
		ttl = &n
	}

	_, err = h.Svc.Provision(r.Context(), IdentityFromContext(r.Context()), model.CreateAccountParams{
		Username:   r.PostFormValue("username"),
		Password:   r.PostFormValue("password"),
		Role:       role,
		TTLMinutes: ttl,
	})
	switch {
	case err == nil:
		http.Redirect(w, r, "/admin", http.StatusFound)
	case errors.Is(err, service.ErrDuplicateUsername):
		http.Redirect(w, r, "/admin?error=duplicate_username", http.StatusFound)
	case apperrors.IsValidation(err):
		http.Redirect(w, r, "/admin?error=invalid_input", http.StatusFound)
	default:
		h.writeAccountError(w, r, err, "provision_failed")
	}
}

// Delete removes an account by id.
// DELETE /api/admin/users/{id}.
func (h *AccountHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_id", Err: errors.New("account id is required")})
		return
	}

	if err := h.Svc.Delete(r.Context(), IdentityFromContext(r.Context()), id); err != nil {
		h.writeAccountError(w, r, err, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandlers) writeAccountError(w http.ResponseWriter, r *http.Request, err error, fallbackCode string) {
	switch {
	case errors.Is(err, service.ErrDuplicateUsername):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "duplicate_username", Err: err})
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: "forbidden", Err: err})
	case errors.Is(err, data.ErrAccountNotFound):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "account_not_found", Err: err})
	case apperrors.IsValidation(err):
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
	default:
		h.logger().ErrorContext(r.Context(), "account operation failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: fallbackCode, Err: errors.New("internal error")})
	}
}
