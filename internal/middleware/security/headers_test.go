package security

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestVisualizationHeadersAllowEmbedding(t *testing.T) {
	h := NewHeadersMiddleware(VisualizationHeadersConfig()).Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v/dashboard.html", nil))

	if got := rr.Header().Get("X-Frame-Options"); got != "" {
		t.Errorf("X-Frame-Options should be unset, got %q", got)
	}
	csp := rr.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "notion.so") || !strings.Contains(csp, "script-src 'unsafe-inline'") {
		t.Errorf("unexpected CSP: %s", csp)
	}
	if rr.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must only be sent over TLS")
	}
}

func TestAPIHeaders(t *testing.T) {
	h := NewHeadersMiddleware(APIHeadersConfig()).Middleware(NoCache(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/refresh", nil))

	if got := rr.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
	if got := rr.Header().Get("Cache-Control"); got != "no-cache, must-revalidate" {
		t.Errorf("Cache-Control = %q", got)
	}
}
