package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"scheduler-backend/config"
	"scheduler-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:   config.ServerConfig{Port: 8000, Mode: gin.TestMode},
		CORS:     config.CORSConfig{AllowOrigins: []string{"http://localhost:3000"}},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, DSN: filepath.Join(t.TempDir(), "test.db")},
		Auth:     config.AuthConfig{TokenTTLHours: 1},
	}
}

func setup(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.ConnectDB(cfg.Database)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() { config.CloseDB(db) })

	r, err := SetupRouter(Deps{Config: cfg, DB: db})
	require.NoError(t, err)
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutesRegistered(t *testing.T) {
	r := setup(t, testConfig(t))

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}
	for _, want := range []string{
		"GET /api/schedules",
		"GET /api/schedules/:id",
		"POST /api/schedule/add",
		"PUT /api/schedule/edit/:id",
		"DELETE /api/schedules/:id",
		"GET /api/calendar",
		"GET /api/calendar.ics",
		"GET /api/dashboard",
		"GET /health",
		"POST /auth/login",
		"GET /",
		"POST /reminders",
		"POST /reminders/:id",
		"POST /reminders/:id/delete",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestMiddleware(t *testing.T) {
	r := setup(t, testConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/api/schedules", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := serve(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get(config.RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/api/schedules", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = serve(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthEnabled(t *testing.T) {
	cfg := testConfig(t)
	hash, err := utils.HashPassword("letmein")
	require.NoError(t, err)
	cfg.Auth.PasswordHash = hash
	cfg.Auth.JWTSecret = utils.GenerateJWTSecret()
	r := setup(t, cfg)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/schedules", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	login := func(password string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]string{"password": password})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return serve(r, req)
	}

	w = login("wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = login("letmein")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	req := httptest.NewRequest(http.MethodGet, "/api/schedules", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthDisabled(t *testing.T) {
	r := setup(t, testConfig(t))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w = serve(r, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
}
