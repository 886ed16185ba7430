package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	laser "Aperture/internal/calc/laser"
	config "Aperture/internal/config"
	repo "Aperture/internal/repo"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Config{TokenKey: "test-key", RateLimit: 1000, RateBurst: 1000}
	r := mux.NewRouter()
	HandleList(r, cfg, repo.NewMemory(), laser.Default())
	return withLogging(zerolog.Nop(), CORS(r))
}

func TestRoutes(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tools/laser/presets", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Request-Id"))

	calc := `{"wavelength_nm":632.8,"power_mw":5,"beam_diameter_mm":1,"divergence_mrad":1,"exposure_time_s":0.25}`
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/user/tools/laser/calc", strings.NewReader(calc)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"login":"lso","email":"lso@example.com","password":"secret1"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/laser/calc", strings.NewReader(calc))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"class":"3R"`)
}

func TestCORSPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/user/history", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
