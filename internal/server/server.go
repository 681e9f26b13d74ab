// Package server exposes the built site over HTTP together with a JSON
// playlist API and on-the-fly baked carousel pages.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	"showcase/internal/carousel"
	"showcase/internal/errs"
	"showcase/internal/greeting"
	"showcase/internal/page"
	"showcase/internal/playlist"
	"showcase/internal/probe"
	"showcase/internal/render"
	"showcase/internal/resolver"
)

// Options configures a Server.
type Options struct {
	Root     string // built site directory
	Resolver *resolver.Resolver
	Cache    *probe.Cache // optional; invalidated on site changes
	// AssetBase is prepended to site-relative paths to form the URLs the
	// cache is keyed by.
	AssetBase      string
	Lightbox       bool
	Hero           bool
	SwipeThreshold float64
	Greetings      *greeting.Store // optional; enables /api/greeting
	Logger         *zap.Logger
}

// Server serves the site and the carousel API.
type Server struct {
	opts  Options
	files *probe.FSChecker
	log   *zap.Logger
	mux   *http.ServeMux
}

// New builds the handler tree.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	s := &Server{
		opts:  opts,
		files: probe.NewFSChecker(opts.Root),
		log:   opts.Logger.Named("server"),
		mux:   http.NewServeMux(),
	}
	s.mux.Handle("/health", HealthHandler())
	s.mux.HandleFunc("/api/playlist", s.handlePlaylist)
	s.mux.HandleFunc("/api/pages/", s.handlePage)
	s.mux.HandleFunc("/carousel/", s.handleCarousel)
	if opts.Greetings != nil {
		s.mux.HandleFunc("/api/greeting", s.handleGreeting)
	}
	s.mux.Handle("/", http.FileServer(http.Dir(opts.Root)))
	return s
}

// RequestIDHeader carries the per-request id, reused when the client
// sends one.
const RequestIDHeader = "X-Request-ID"

// Handler returns the server wrapped with response compression.
func (s *Server) Handler() http.Handler {
	return gzhttp.GzipHandler(s)
}

// ServeHTTP tags and logs every request and dispatches it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := r.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, id)

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	s.log.Debug("request",
		zap.String("id", id),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", rec.status),
		zap.Duration("took", time.Since(start)))
}

// Refresh drops cached probe results for a changed screenshot so the
// next request sees the file appear or disappear.
func (s *Server) Refresh(c playlist.Change) {
	if s.opts.Cache == nil {
		return
	}
	rel, err := filepath.Rel(s.opts.Root, c.Path)
	if err != nil || strings.HasPrefix(rel, "..") {
		s.opts.Cache.Reset()
		return
	}
	u := strings.TrimSuffix(s.opts.AssetBase, "/") + "/" + filepath.ToSlash(rel)
	s.opts.Cache.Invalidate(u)
	s.log.Info("site changed", zap.String("op", c.Op), zap.String("url", u), zap.Int("files", len(c.Files)))
}

// playlistResponse is the JSON body of the playlist endpoints.
type playlistResponse struct {
	carousel.Snapshot
	View carousel.View `json:"view"`
	Hero *page.Hero    `json:"hero,omitempty"`
}

func (s *Server) handlePlaylist(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := resolver.Request{
		ProjectID:  q.Get("project"),
		VideoURL:   q.Get("video"),
		PreviewURL: q.Get("preview"),
	}
	if v := q.Get("shots"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httpError(w, http.StatusBadRequest, "shots must be a non-negative integer")
			return
		}
		if limit := s.opts.Resolver.MaxShots(); n > limit {
			httpError(w, http.StatusBadRequest, "shots must not exceed "+strconv.Itoa(limit))
			return
		}
		req.MaxShots = n
	}

	ctl, err := s.resolve(r, req)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, playlistResponse{Snapshot: ctl.Snapshot(), View: ctl.View()})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadPage(w, strings.TrimPrefix(r.URL.Path, "/api/pages"))
	if !ok {
		return
	}
	ctl, err := s.resolve(r, p.Request())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, playlistResponse{Snapshot: ctl.Snapshot(), View: ctl.View(), Hero: p.Hero})
}

func (s *Server) handleCarousel(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadPage(w, strings.TrimPrefix(r.URL.Path, "/carousel"))
	if !ok {
		return
	}
	ctl, err := s.resolve(r, p.Request())
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := render.Inject(p, ctl.View(), render.Options{Hero: s.opts.Hero}); err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.Render(w); err != nil {
		s.log.Warn("render failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

func (s *Server) handleGreeting(w http.ResponseWriter, r *http.Request) {
	idx, err := s.opts.Greetings.Next(len(greeting.Default))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, map[string]any{"index": idx, "greeting": greeting.Pick(greeting.Default, idx)})
}

// loadPage parses the site page at the URL path rel, writing the error
// response itself when it cannot.
func (s *Server) loadPage(w http.ResponseWriter, rel string) (*page.Page, bool) {
	if !strings.HasSuffix(rel, ".html") {
		httpError(w, http.StatusNotFound, "not a page")
		return nil, false
	}
	path, ok := s.files.Path(rel)
	if !ok {
		httpError(w, http.StatusBadRequest, "invalid page path")
		return nil, false
	}
	p, err := page.Load(path)
	if err != nil {
		s.fail(w, err)
		return nil, false
	}
	return p, true
}

func (s *Server) resolve(r *http.Request, req resolver.Request) (*carousel.Controller, error) {
	pl, err := s.opts.Resolver.Resolve(r.Context(), req)
	if err != nil {
		return nil, err
	}
	opts := []carousel.Option{carousel.WithLogger(s.log)}
	if s.opts.Lightbox {
		opts = append(opts, carousel.WithLightbox())
	}
	if s.opts.SwipeThreshold != 0 {
		opts = append(opts, carousel.WithSwipeThreshold(s.opts.SwipeThreshold))
	}
	return carousel.New(pl, opts...), nil
}

// fail maps domain errors onto status codes.
func (s *Server) fail(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, os.ErrNotExist):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrNoPreview):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrNoProjectImage), errors.Is(err, errs.ErrNoContainer):
		code = http.StatusUnprocessableEntity
	}
	if code == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	}
	httpError(w, code, err.Error())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func httpError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
