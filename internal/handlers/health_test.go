package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"delipucash/internal/config"
	"delipucash/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHealthEngine(s store.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Server.Version = "1.2.3"

	h := NewHealthHandler(s, cfg)
	r := gin.New()
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/ping", h.Ping)
	r.GET("/api/health", h.APIHealth)
	r.NoRoute(h.NotFound)
	return r
}

func get(t *testing.T, r *gin.Engine, path string) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHealth(t *testing.T) {
	code, body := get(t, newHealthEngine(store.NewMemoryStore()), "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "test", body["environment"])
	assert.Equal(t, "1.2.3", body["version"])
	assert.Equal(t, "healthy", body["database"].(map[string]any)["status"])
	assert.Contains(t, body, "memory")
}

func TestHealthDatabaseDown(t *testing.T) {
	s := &brokenStore{MemoryStore: store.NewMemoryStore(), err: errors.New("dial tcp: connection refused")}
	code, body := get(t, newHealthEngine(s), "/health")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	database := body["database"].(map[string]any)
	assert.Equal(t, "unhealthy", database["status"])
	assert.Equal(t, "dial tcp: connection refused", database["error"])
	assert.Equal(t, "unhealthy", body["services"].(map[string]any)["database"])
}

func TestAmbientRoutes(t *testing.T) {
	r := newHealthEngine(store.NewMemoryStore())

	code, body := get(t, r, "/ping")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pong", body["message"])

	code, body = get(t, r, "/api/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "test", body["environment"])

	code, body = get(t, r, "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Running", body["status"])

	code, body = get(t, r, "/api/nowhere")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Route /api/nowhere not found", body["message"])
}
