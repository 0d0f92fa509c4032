package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/config"
	"github.com/draperly/atelier-api/internal/http/middleware"
)

func corsPreflight(t *testing.T, handler http.Handler, origin string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS_DevelopmentAllowsAllOrigins(t *testing.T) {
	cfg := &config.CORSConfig{
		AllowedOrigins:   []string{},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	handler := middleware.CORS(cfg, "development", zap.NewNop())(okHandler())

	w := corsPreflight(t, handler, "http://localhost:3000")
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_ExplicitOrigins(t *testing.T) {
	cfg := &config.CORSConfig{
		AllowedOrigins:   []string{"https://app.draperly.app", "https://admin.draperly.app"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	handler := middleware.CORS(cfg, "production", zap.NewNop())(okHandler())

	w := corsPreflight(t, handler, "https://app.draperly.app")
	assert.Equal(t, "https://app.draperly.app", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	cfg := &config.CORSConfig{
		AllowedOrigins: []string{"https://app.draperly.app"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}

	handler := middleware.CORS(cfg, "production", zap.NewNop())(okHandler())

	w := corsPreflight(t, handler, "https://malicious.example")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_WildcardOrigin(t *testing.T) {
	cfg := &config.CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET"},
		AllowedHeaders: []string{"Accept"},
	}

	handler := middleware.CORS(cfg, "production", zap.NewNop())(okHandler())

	w := corsPreflight(t, handler, "https://anything.example")
	assert.Equal(t, "https://anything.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_ProductionWithoutOriginsDeniesAll(t *testing.T) {
	cfg := &config.CORSConfig{
		AllowedOrigins: []string{},
		AllowedMethods: []string{"GET"},
		AllowedHeaders: []string{"Accept"},
	}

	handler := middleware.CORS(cfg, "production", zap.NewNop())(okHandler())

	w := corsPreflight(t, handler, "https://app.draperly.app")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
