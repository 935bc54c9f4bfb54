package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/tasklight/tasklight/internal/service"
)

// IdentityResolver resolves a raw session token into a request identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (service.Resolution, error)
}

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// WithIdentity returns a middleware that resolves the session cookie on
// every request and attaches the resulting identity to the context.
// Requests with no cookie or an unusable token proceed as anonymous; an
// unusable token additionally gets its cookie cleared so the browser stops
// sending it.
func WithIdentity(resolver IdentityResolver, cookies CookieConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if c, err := r.Cookie(SessionCookieName); err == nil {
				token = c.Value
			}

			res, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				// Infrastructure failure while resolving: log and continue as
				// anonymous rather than failing the whole request.
				logger.ErrorContext(r.Context(), "resolve session failed", "error", err)
			}
			if res.ClearSession {
				clearSessionCookie(w, r, cookies)
			}

			ctx := SetIdentityInContext(r.Context(), res.Identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth returns a middleware that rejects anonymous requests.
// API requests get a 401 JSON body; browser requests are redirected to the
// login page with the original destination preserved.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IdentityFromContext(r.Context()).IsAnonymous() {
				denyUnauthenticated(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin returns a middleware that rejects everything but
// authenticated admin identities.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := IdentityFromContext(r.Context())
			if identity.IsAnonymous() {
				denyUnauthenticated(w, r)
				return
			}
			if !identity.IsAdmin() {
				if isAPIRequest(r) {
					WriteError(w, ErrorParams{
						Code:    http.StatusForbidden,
						ErrCode: "insufficient_permissions",
						Err:     errors.New("insufficient permissions"),
					})
					return
				}
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func denyUnauthenticated(w http.ResponseWriter, r *http.Request) {
	if isAPIRequest(r) {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}
	u := url.URL{Path: "/login"}
	q := url.Values{}
	q.Set("redirect_uri", safeRedirectPath(r.URL.RequestURI()))
	u.RawQuery = q.Encode()
	http.Redirect(w, r, u.String(), http.StatusFound)
}

func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

// safeRedirectPath allows only relative paths (no scheme/host) starting
// with "/". Anything else collapses to the root.
func safeRedirectPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return u.RequestURI()
}
