package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	domainauth "github.com/tasklight/tasklight/internal/domain/auth"
	"github.com/tasklight/tasklight/internal/service"
)

// LoginService defines the auth service operations the handlers need.
type LoginService interface {
	Login(ctx context.Context, username, password string) (*service.LoginResult, error)
}

// AuthHandlers provides HTTP handlers for login and logout.
type AuthHandlers struct {
	Svc      LoginService
	Cookies  CookieConfig
	Renderer *TemplateRenderer
	Logger   *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type loginPageData struct {
	Identity domainauth.Identity
	Error    string
	Redirect string
}

// LoginPage renders the login form.
// GET /login?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if !identity.IsAnonymous() {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	h.Renderer.Render(w, http.StatusOK, "login.tmpl", loginPageData{
		Identity: identity,
		Redirect: safeRedirectPath(r.URL.Query().Get("redirect_uri")),
	})
}

// LoginForm handles the browser login form submission.
// POST /login.
func (h *AuthHandlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	redirectURI := safeRedirectPath(r.PostFormValue("redirect_uri"))
	result, err := h.Svc.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		h.Renderer.Render(w, loginFailureStatus(err), "login.tmpl", loginPageData{
			Identity: domainauth.Anonymous(),
			Error:    loginFailureMessage(err),
			Redirect: redirectURI,
		})
		return
	}

	setSessionCookie(w, r, h.Cookies, result.Token)
	http.Redirect(w, r, redirectURI, http.StatusFound)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginAPI handles JSON logins.
// POST /api/login.
func (h *AuthHandlers) LoginAPI(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "invalid_credentials", Err: err})
		case errors.Is(err, service.ErrAccountExpired):
			WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "account_expired", Err: err})
		default:
			h.logger().ErrorContext(r.Context(), "login failed", "error", err)
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "login_failed", Err: errors.New("login failed")})
		}
		return
	}

	setSessionCookie(w, r, h.Cookies, result.Token)
	WriteJSON(w, http.StatusOK, map[string]any{
		"id":       result.Identity.ID,
		"username": result.Identity.Username,
		"role":     result.Identity.Role,
	})
}

// Logout clears the session cookie on the client. The token itself is
// stateless, so there is nothing to invalidate server-side.
// GET /logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, r, h.Cookies)
	if isAPIRequest(r) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

func loginFailureStatus(err error) int {
	if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrAccountExpired) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

func loginFailureMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, service.ErrAccountExpired):
		return "This account has expired."
	default:
		return "Login failed. Please try again."
	}
}
