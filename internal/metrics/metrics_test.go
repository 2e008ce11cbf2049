package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestObserveBeforeInitIsNoop(t *testing.T) {
	// Collectors are nil until Init runs; observations must not panic.
	ObserveRender("event", "ok")
	ObserveBotVisit("googlebot")
	ObserveUpstreamError("items")
	ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
}

func TestInitAndHandler(t *testing.T) {
	Init()
	Init()

	ObserveRender("event", "ok")
	ObserveBotVisit("")
	ObserveUpstreamError("items")
	ObserveHTTPRequest(http.MethodGet, "/news", http.StatusOK, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "prerender_renders_total")
	require.Contains(t, body, `prerender_bot_visits_total{bot="other"}`)
	require.Contains(t, body, "prerender_upstream_errors_total")
	require.Contains(t, body, "http_requests_total")
}
