package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ynabviz/internal/blob"
	"ynabviz/internal/blob/memory"
	"ynabviz/internal/services"
)

type fakeRefresher struct {
	resp  services.Response
	calls int
}

func (f *fakeRefresher) Handle(context.Context) services.Response {
	f.calls++
	return f.resp
}

func okResponse() services.Response {
	return services.Response{StatusCode: http.StatusOK, Body: services.SuccessBody{
		Message:              services.MessageSuccess,
		CategoryData:         []services.CategoryJSON{{Name: "Groceries", Budgeted: 500, Balance: 300, Activity: -200}},
		VisualizationBaseURL: "http://localhost:8080/v/",
	}}
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func TestHealth(t *testing.T) {
	srv := NewServer(":0", &fakeRefresher{}, nil, Options{})
	rr := do(t, srv.Handler, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestRefreshSuccess(t *testing.T) {
	ref := &fakeRefresher{resp: okResponse()}
	srv := NewServer(":0", ref, nil, Options{})

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		rr := do(t, srv.Handler, method, "/refresh")
		require.Equal(t, http.StatusOK, rr.Code, method)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

		var body map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "Success", body["message"])
		assert.Len(t, body["categoryData"], 1)
	}
	assert.Equal(t, 2, ref.calls)
}

func TestRefreshFailure(t *testing.T) {
	ref := &fakeRefresher{resp: services.ErrorResponse(assert.AnError)}
	srv := NewServer(":0", ref, nil, Options{})

	rr := do(t, srv.Handler, http.MethodPost, "/refresh")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"message":"Internal server error","error":"`+assert.AnError.Error()+`"}`, rr.Body.String())
}

func TestRefreshRateLimited(t *testing.T) {
	ref := &fakeRefresher{resp: okResponse()}
	srv := NewServer(":0", ref, nil, Options{RefreshLimit: 2})

	assert.Equal(t, http.StatusOK, do(t, srv.Handler, http.MethodPost, "/refresh").Code)
	assert.Equal(t, http.StatusOK, do(t, srv.Handler, http.MethodPost, "/refresh").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, srv.Handler, http.MethodPost, "/refresh").Code)
	assert.Equal(t, 2, ref.calls)
}

func TestServeObjects(t *testing.T) {
	store := memory.New()
	require.NoError(t, store.Put(context.Background(), blob.Object{
		Key:         "dashboard.html",
		Body:        []byte("<!DOCTYPE html>\n<html></html>"),
		ContentType: "text/html",
	}))
	srv := NewServer(":0", &fakeRefresher{}, nil, Options{Objects: store})

	rr := do(t, srv.Handler, http.MethodGet, "/v/dashboard.html")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "frame-ancestors")
	assert.Equal(t, "<!DOCTYPE html>\n<html></html>", rr.Body.String())

	assert.Equal(t, http.StatusNotFound, do(t, srv.Handler, http.MethodGet, "/v/missing.html").Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv.Handler, http.MethodGet, "/v/").Code)
}

func TestObjectsRouteDisabledWithoutReader(t *testing.T) {
	srv := NewServer(":0", &fakeRefresher{}, nil, Options{})
	assert.Equal(t, http.StatusNotFound, do(t, srv.Handler, http.MethodGet, "/v/dashboard.html").Code)
}

func TestExtractClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:5000"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.5")
	assert.Equal(t, "203.0.113.9", extractClientIP(req))

	req.RemoteAddr = "198.51.100.7:5000"
	assert.Equal(t, "198.51.100.7", extractClientIP(req))
}
