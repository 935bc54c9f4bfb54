package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/tasklight/tasklight/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth     *service.AuthService
	Tasks    *service.TaskService
	Accounts *service.AccountService

	CookieDomain string
	TemplateFS   fs.FS        // Filesystem containing the page templates (required)
	StaticFS     fs.FS        // Filesystem served under /static/ (optional)
	Logger       *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures a new HTTP router. Every route runs
// behind the identity middleware; route groups add RequireAuth or
// RequireAdmin on top.
func NewRouter(services RouterServices) (http.Handler, error) {
	renderer, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: services.TemplateFS,
		Logger:     services.Logger,
	})
	if err != nil {
		return nil, err
	}

	cookies := CookieConfig{Domain: services.CookieDomain}
	authHandlers := &AuthHandlers{Svc: services.Auth, Cookies: cookies, Renderer: renderer, Logger: services.Logger}
	taskHandlers := &TaskHandlers{Svc: services.Tasks, Logger: services.Logger}
	accountHandlers := &AccountHandlers{Svc: services.Accounts, Logger: services.Logger}
	uiHandlers := &UIHandlers{
		Tasks:    services.Tasks,
		Accounts: services.Accounts,
		Renderer: renderer,
		Logger:   services.Logger,
	}

	mux := http.NewServeMux()
	requireAuth := RequireAuth()
	requireAdmin := RequireAdmin()

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	if services.StaticFS != nil {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(services.StaticFS)))
	}

	// Browser pages
	mux.Handle("GET /", http.HandlerFunc(uiHandlers.Dashboard))
	mux.Handle("GET /login", http.HandlerFunc(authHandlers.LoginPage))
	mux.Handle("POST /login", http.HandlerFunc(authHandlers.LoginForm))
	mux.Handle("GET /logout", http.HandlerFunc(authHandlers.Logout))
	mux.Handle("POST /todos", requireAuth(http.HandlerFunc(taskHandlers.CreateForm)))
	mux.Handle("GET /admin", requireAdmin(http.HandlerFunc(uiHandlers.AdminPanel)))
	mux.Handle("POST /admin/users", requireAdmin(http.HandlerFunc(accountHandlers.CreateForm)))

	// JSON API
	mux.Handle("POST /api/login", http.HandlerFunc(authHandlers.LoginAPI))
	mux.Handle("POST /api/logout", http.HandlerFunc(authHandlers.Logout))
	mux.Handle("GET /api/todos", http.HandlerFunc(taskHandlers.List))
	mux.Handle("POST /api/todos", requireAuth(http.HandlerFunc(taskHandlers.Create)))
	mux.Handle("GET /api/todos/{id}", http.HandlerFunc(taskHandlers.GetContent))
	mux.Handle("PATCH /api/todos/{id}/toggle", requireAuth(http.HandlerFunc(taskHandlers.Toggle)))
	mux.Handle("DELETE /api/todos/{id}", requireAuth(http.HandlerFunc(taskHandlers.Delete)))
	mux.Handle("GET /api/admin/users", requireAdmin(http.HandlerFunc(accountHandlers.List)))
	mux.Handle("POST /api/admin/users", requireAdmin(http.HandlerFunc(accountHandlers.Create)))
	mux.Handle("DELETE /api/admin/users/{id}", requireAdmin(http.HandlerFunc(accountHandlers.Delete)))

	identity := WithIdentity(services.Auth, cookies, loggerOrDefault(services.Logger))
	return identity(mux), nil
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
