package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasklight/tasklight/internal/service"
)

func TestAuthHandlers_LoginAPI_Success(t *testing.T) {
	t.Parallel()

	h := &AuthHandlers{
		Svc:    &stubLoginService{result: &service.LoginResult{Identity: testUser, Token: "signed"}},
		Logger: testLogger(),
	}

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"alice","password":"pw"}`))
	rec := httptest.NewRecorder()
	h.LoginAPI(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Equal(t, "signed", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}

func TestAuthHandlers_LoginAPI_InvalidCredentials(t *testing.T) {
	t.Parallel()

	h := &AuthHandlers{
		Svc:    &stubLoginService{err: service.ErrInvalidCredentials},
		Logger: testLogger(),
	}

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"alice","password":"bad"}`))
	rec := httptest.NewRecorder()
	h.LoginAPI(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_credentials")
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuthHandlers_LoginAPI_ExpiredAccountDistinct(t *testing.T) {
	t.Parallel()

	h := &AuthHandlers{
		Svc:    &stubLoginService{err: service.ErrAccountExpired},
		Logger: testLogger(),
	}

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"alice","password":"pw"}`))
	rec := httptest.NewRecorder()
	h.LoginAPI(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "account_expired")
}

func TestAuthHandlers_LoginAPI_BadJSON(t *testing.T) {
	t.Parallel()

	h := &AuthHandlers{Svc: &stubLoginService{}, Logger: testLogger()}

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":`))
	rec := httptest.NewRecorder()
	h.LoginAPI(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_json")
}

func TestAuthHandlers_Logout_ClearsCookieAndRedirects(t *testing.T) {
	t.Parallel()

	h := &AuthHandlers{Svc: &stubLoginService{}, Logger: testLogger()}

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "signed"})
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestAuthHandlers_Logout_APIGetsJSON(t *testing.T) {
	t.Parallel()

	h := &AuthHandlers{Svc: &stubLoginService{}, Logger: testLogger()}

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "success")
}
