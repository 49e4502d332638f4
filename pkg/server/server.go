// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	GET /                 liveness text
//	GET /documents        JSON list of document paths
//	GET /file/{path}      rendered document; query: nocache, padding, pixel, format
//	GET /watch/{path}     websocket feed of {"path","fingerprint"} change events
//
// Failures are answered with a plain-text body and the status from
// errors.HTTPStatus.
package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sketchview/pkg/buildinfo"
	"github.com/matzehuels/sketchview/pkg/errors"
	"github.com/matzehuels/sketchview/pkg/pipeline"
	"github.com/matzehuels/sketchview/pkg/render"
	"github.com/matzehuels/sketchview/pkg/watch"
)

// Server serves rendered documents.
type Server struct {
	runner   *pipeline.Runner
	notifier *watch.Notifier
	defaults render.Config
	logger   *log.Logger
	router   chi.Router

	// stopping is closed when an http.Server running s shuts down, so
	// hijacked change feeds end too.
	stopping chan struct{}
	stopOnce sync.Once
}

// New builds a server. A nil notifier disables the change feed.
func New(runner *pipeline.Runner, notifier *watch.Notifier, defaults render.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:   runner,
		notifier: notifier,
		defaults: defaults,
		logger:   logger,
		stopping: make(chan struct{}),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleRoot)
	r.Get("/documents", s.handleDocuments)
	r.Get("/file/*", s.handleFile)
	r.Get("/watch/*", s.handleWatch)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. If ready is non-nil it receives the bound listener address.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if ready != nil {
		ready(ln.Addr())
	}
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(s.stopFeeds)

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) stopFeeds() {
	s.stopOnce.Do(func() { close(s.stopping) })
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("sketchview " + buildinfo.Version + "\n"))
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.runner.Store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if docs == nil {
		docs = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(docs)
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("ETag", strconv.Quote(res.Fingerprint))
	if res.CacheHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	_, _ = w.Write(res.Artifact)
}

// options merges query overrides into the server defaults.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Document:              chi.URLParam(r, "*"),
		Format:                s.defaults.Format,
		Padding:               s.defaults.Padding,
		PixelScale:            s.defaults.PixelScale,
		Background:            s.defaults.Background,
		UseDocumentBackground: s.defaults.UseDocumentBackground,
		NoCache:               q.Has("nocache"),
		Logger:                loggerFrom(r.Context(), s.logger),
	}
	if v := q.Get("padding"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "padding %q", v)
		}
		opts.Padding = f
	}
	if v := q.Get("pixel"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "pixel %q", v)
		}
		opts.PixelScale = f
	}
	if v := q.Get("format"); v != "" {
		if err := errors.ValidateFormat(v); err != nil {
			return opts, err
		}
		opts.Format = v
	}
	return opts, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	logger := loggerFrom(r.Context(), s.logger)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		logger.Debug("request rejected", "path", r.URL.Path, "err", err)
	}
	http.Error(w, errors.UserMessage(err), status)
}
