package trace

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"fintrack/internal/log"
)

func serve(t *testing.T, status int) string {
	t.Helper()
	var buf bytes.Buffer
	logger := log.New(log.Config{Level: slog.LevelDebug, Output: &buf})

	m := NewMiddleware(func(*http.Request) string { return "10.0.0.1" })
	handler := log.Middleware(logger)(m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats?x=1", nil))
	assert.Equal(t, status, rec.Code)
	return buf.String()
}

func TestMiddlewareLogsCompletion(t *testing.T) {
	out := serve(t, http.StatusOK)
	assert.Contains(t, out, "HTTP request started")
	assert.Contains(t, out, "HTTP request completed")
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "status_code=200")
	assert.Contains(t, out, "client_ip=10.0.0.1")
	assert.Contains(t, out, `query="x=1"`)
}

func TestMiddlewareLevelFollowsStatus(t *testing.T) {
	assert.Contains(t, serve(t, http.StatusNotFound), "level=WARN")
	assert.Contains(t, serve(t, http.StatusInternalServerError), "level=ERROR")
}

func TestMiddlewareDefaultsToRemoteAddr(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Output: &buf})
	handler := log.Middleware(logger)(NewMiddleware(nil).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Contains(t, buf.String(), "client_ip="+req.RemoteAddr)
	assert.Contains(t, buf.String(), "status_code=200")
}
