package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/tasklight/tasklight/internal/domain/auth"
	"github.com/tasklight/tasklight/internal/domain/model"
)

// UIHandlers renders the browser pages.
type UIHandlers struct {
	Tasks    TasksService
	Accounts AccountsService
	Renderer *TemplateRenderer
	Logger   *slog.Logger
}

func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type dashboardData struct {
	Identity domainauth.Identity
	Tasks    []model.TaskWithAccess
}

// Dashboard renders the public task list.
// GET /.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	// The root pattern matches every unregistered path; anything but "/"
	// itself is a 404.
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	identity := IdentityFromContext(r.Context())
	tasks, err := h.Tasks.List(r.Context(), identity)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "list tasks for dashboard failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.Renderer.Render(w, http.StatusOK, "index.tmpl", dashboardData{
		Identity: identity,
		Tasks:    tasks,
	})
}

type adminPageData struct {
	Identity domainauth.Identity
	Accounts []*model.Account
	Error    string
}

// AdminPanel renders the account administration page. Sits behind
// RequireAdmin.
// GET /admin.
func (h *UIHandlers) AdminPanel(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	accounts, err := h.Accounts.List(r.Context(), identity)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "list accounts for admin panel failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.Renderer.Render(w, http.StatusOK, "admin.tmpl", adminPageData{
		Identity: identity,
		Accounts: accounts,
		Error:    adminErrorMessage(r.URL.Query().Get("error")),
	})
}

func adminErrorMessage(code string) string {
	switch code {
	case "duplicate_username":
		return "That username is already taken."
	case "invalid_role":
		return "Role must be admin or user."
	case "invalid_ttl":
		return "TTL must be a positive number of minutes."
	case "invalid_input":
		return "Username and password are required."
	default:
		return ""
	}
}
