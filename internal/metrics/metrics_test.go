package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAuthAttempt(t *testing.T) {
	before := testutil.ToFloat64(AuthAttempts.WithLabelValues("login", "error"))
	RecordAuthAttempt("login", errors.New("bad password"))
	assert.Equal(t, before+1, testutil.ToFloat64(AuthAttempts.WithLabelValues("login", "error")))

	before = testutil.ToFloat64(AuthAttempts.WithLabelValues("login", "success"))
	RecordAuthAttempt("login", nil)
	assert.Equal(t, before+1, testutil.ToFloat64(AuthAttempts.WithLabelValues("login", "success")))
}

func TestRecordLedgerEvent(t *testing.T) {
	before := testutil.ToFloat64(LedgerEventsPublished.WithLabelValues("goal.created", "success"))
	RecordLedgerEvent("goal.created", nil)
	assert.Equal(t, before+1, testutil.ToFloat64(LedgerEventsPublished.WithLabelValues("goal.created", "success")))
}

func TestRecordAdvice(t *testing.T) {
	before := testutil.ToFloat64(AdviceRequests.WithLabelValues(AdviceFallback))
	RecordAdvice(AdviceFallback)
	assert.Equal(t, before+1, testutil.ToFloat64(AdviceRequests.WithLabelValues(AdviceFallback)))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Delete("/api/goals/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := APIRequestsTotal.WithLabelValues(http.MethodDelete, "/api/goals/{id}", "404")
	before := testutil.ToFloat64(counter)

	req := httptest.NewRequest(http.MethodDelete, "/api/goals/6f1c1c1e-0000-4000-8000-000000000000", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRecordAPIRequest(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("GET", "/api/stats", "200")
	before := testutil.ToFloat64(counter)
	RecordAPIRequest("GET", "/api/stats", 200, 15*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
