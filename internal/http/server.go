// Package http exposes the refresh pipeline over HTTP and, for local
// sinks, serves the published visualizations.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"ynabviz/internal/blob"
	"ynabviz/internal/log"
	"ynabviz/internal/middleware/security"
	"ynabviz/internal/middleware/trace"
	"ynabviz/internal/services"
)

// DefaultRefreshLimit is the number of refreshes allowed per client per minute.
const DefaultRefreshLimit = 6

// Refresher runs one refresh and returns the response to send.
type Refresher interface {
	Handle(ctx context.Context) services.Response
}

type Options struct {
	// Objects serves published objects under /v/. Nil disables the route.
	Objects blob.ObjectReader
	// RefreshLimit caps refreshes per client IP per minute.
	RefreshLimit int
}

type Server struct {
	http.Server
	refresher    Refresher
	objects      blob.ObjectReader
	trace        *trace.Middleware
	logger       *log.Logger
	shutdownOnce sync.Once
}

func NewServer(addr string, refresher Refresher, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.NewDiscard()
	}
	if opts.RefreshLimit <= 0 {
		opts.RefreshLimit = DefaultRefreshLimit
	}

	s := &Server{
		refresher: refresher,
		objects:   opts.Objects,
		trace:     trace.NewMiddleware(logger, extractClientIP),
		logger:    logger.WithComponent(log.ComponentHTTP),
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.trace.Middleware)

	r.Get("/healthz", handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(security.NewHeadersMiddleware(security.APIHeadersConfig()).Middleware)
		r.Use(security.NoCache)
		r.Use(httprate.Limit(opts.RefreshLimit, time.Minute,
			httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
				return extractClientIP(r), nil
			})))
		r.Get("/refresh", s.handleRefresh)
		r.Post("/refresh", s.handleRefresh)
	})

	if s.objects != nil {
		r.Group(func(r chi.Router) {
			r.Use(security.NewHeadersMiddleware(security.VisualizationHeadersConfig()).Middleware)
			r.Use(security.NoCache)
			r.Get("/v/*", s.handleObject)
		})
	}

	s.Server = http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		// a refresh waits on two remote APIs
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		m := s.trace.GetMetrics()
		s.logger.InfoContext(ctx, "HTTP server shutting down",
			log.FieldOperation, log.OpShutdown,
			"total_requests", m.TotalRequests)
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	resp := s.refresher.Handle(r.Context())
	body, err := resp.JSON()
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to encode response", log.FieldError, err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	for k, v := range resp.Headers() {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(body)
}

func (s *Server) handleObject(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if key == "" {
		http.NotFound(w, r)
		return
	}

	obj, err := s.objects.Get(r.Context(), key)
	if errors.Is(err, blob.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to read object",
			log.FieldKey, key,
			log.FieldError, err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(obj.Body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
