package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	repo "Aperture/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnv() *Authenv {
	return &Authenv{JWTkey: []byte("test-key"), Repo: repo.NewMemory()}
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie set", CookieName)
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	env := newEnv()

	rec := httptest.NewRecorder()
	env.RegisterHandler(rec, httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"login":" lso ","email":"lso@example.com","password":"secret1"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)
	c := sessionCookie(t, rec)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)

	rec = httptest.NewRecorder()
	env.RegisterHandler(rec, httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"login":"lso","email":"x@example.com","password":"secret2"}`)))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	env.AuthHandler(rec, httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"login":"lso","password":"secret1"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	sessionCookie(t, rec)

	rec = httptest.NewRecorder()
	env.AuthHandler(rec, httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"login":"lso","password":"wrong"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	env.AuthHandler(rec, httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"login":"ghost","password":"secret1"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{`},
		{"missing email", `{"login":"a","password":"secret1"}`},
		{"short password", `{"login":"a","email":"a@b.c","password":"123"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newEnv().RegisterHandler(rec, httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	env := newEnv()
	var seen int
	h := env.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/history", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := env.NewToken(42, "lso")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/user/history", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 42, seen)

	other := &Authenv{JWTkey: []byte("another-key")}
	forged, err := other.NewToken(1, "lso")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/user/history", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: forged})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLimitMiddleware(t *testing.T) {
	l := NewIPRateLimiter(0.001, 2)
	h := l.LimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:" + []string{"1000", "1001", "1002"}[i]
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
