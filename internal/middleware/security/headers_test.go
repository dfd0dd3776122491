package security

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func serve(cfg HeadersConfig, req *http.Request) http.Header {
	h := NewHeadersMiddleware(cfg).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Header()
}

func TestDefaultHeaders(t *testing.T) {
	headers := serve(DefaultHeadersConfig(), httptest.NewRequest(http.MethodGet, "/api/", nil))

	assert.Equal(t, "nosniff", headers.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", headers.Get("X-Frame-Options"))
	assert.Equal(t, "default-src 'none'; frame-ancestors 'none'", headers.Get("Content-Security-Policy"))
	assert.Equal(t, "no-store", headers.Get("Cache-Control"))
	assert.Empty(t, headers.Get("Strict-Transport-Security"))
}

func TestHSTSOnlyOverHTTPS(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.TLS = &tls.ConnectionState{}
	assert.Equal(t, "max-age=31536000; includeSubDomains", serve(DefaultHeadersConfig(), req).Get("Strict-Transport-Security"))

	req = httptest.NewRequest(http.MethodGet, "/api/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	assert.NotEmpty(t, serve(DefaultHeadersConfig(), req).Get("Strict-Transport-Security"))
}

func TestEmptyValuesAreSkipped(t *testing.T) {
	headers := serve(HeadersConfig{}, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, headers.Get("Content-Security-Policy"))
	assert.Empty(t, headers.Get("Cache-Control"))
}
