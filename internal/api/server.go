// Package api exposes the portfolio service over HTTP: the public read
// endpoints, the admin editor endpoints, login, and file uploads.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/folio/internal/auth"
	"github.com/mesh-intelligence/folio/internal/service"
)

// Uploader stores an uploaded file and returns its public URL.
type Uploader interface {
	Store(r io.Reader, suggestedName string) (string, error)
}

// Options configures a Server.
type Options struct {
	Service *service.Service
	Gate    *auth.Gate
	Cache   *PageCache
	Files   Uploader
	// FilesDir is served read-only under /uploads/. Empty disables it.
	FilesDir string
	// MaxUploadBytes bounds the multipart body of POST /api/upload.
	MaxUploadBytes int64
	Logger         *zap.Logger
}

// Server routes HTTP requests to the service.
type Server struct {
	svc       *service.Service
	gate      *auth.Gate
	cache     *PageCache
	files     Uploader
	filesDir  string
	maxUpload int64
	logger    *zap.Logger
}

// New returns a Server. A nil Cache or Logger is replaced with a fresh
// cache or a no-op logger.
func New(opts Options) *Server {
	s := &Server{
		svc:       opts.Service,
		gate:      opts.Gate,
		cache:     opts.Cache,
		files:     opts.Files,
		filesDir:  opts.FilesDir,
		maxUpload: opts.MaxUploadBytes,
		logger:    opts.Logger,
	}
	if s.cache == nil {
		s.cache = NewPageCache()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.maxUpload <= 0 {
		s.maxUpload = 10 << 20
	}
	return s
}

// Handler returns the routed handler wrapped in the session and logging
// middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/portfolio", s.handlePortfolio)
	mux.HandleFunc("GET /api/portfolio/{section}", s.handlePortfolioSection)
	if s.filesDir != "" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.filesDir))))
	}

	// Session
	mux.HandleFunc("POST /api/admin/login", s.handleLogin)
	mux.HandleFunc("POST /api/admin/logout", s.handleLogout)

	// Editor
	mux.HandleFunc("GET /api/admin/portfolio", s.requireSession(s.handleEditorData))
	mux.HandleFunc("PUT /api/admin/portfolio", s.requireSession(s.handleUpdatePortfolio))
	mux.HandleFunc("PUT /api/admin/profile", s.requireSession(s.handleUpdateProfile))
	mux.HandleFunc("PUT /api/admin/skills", s.requireSession(s.handleUpdateSkills))
	mux.HandleFunc("PUT /api/admin/experience", s.requireSession(s.handleUpdateExperience))
	mux.HandleFunc("PUT /api/admin/projects", s.requireSession(s.handleUpdateProjects))
	mux.HandleFunc("PUT /api/admin/education", s.requireSession(s.handleUpdateEducation))
	mux.HandleFunc("PUT /api/admin/achievements", s.requireSession(s.handleUpdateAchievements))

	// Project management
	mux.HandleFunc("GET /api/admin/projects", s.requireSession(s.handleListProjects))
	mux.HandleFunc("POST /api/admin/projects", s.requireSession(s.handleCreateProject))
	mux.HandleFunc("PUT /api/admin/projects/order", s.requireSession(s.handleReorderProjects))
	mux.HandleFunc("GET /api/admin/projects/{id}", s.requireSession(s.handleGetProject))
	mux.HandleFunc("PUT /api/admin/projects/{id}", s.requireSession(s.handleUpdateProject))
	mux.HandleFunc("DELETE /api/admin/projects/{id}", s.requireSession(s.handleDeleteProject))

	mux.HandleFunc("POST /api/upload", s.requireSession(s.handleUpload))

	return s.logRequests(s.gate.Middleware(mux))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// requireSession answers 401 unless the session middleware marked the
// request authorized.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()) {
			errorResponse(w, http.StatusUnauthorized, service.MsgUnauthorized)
			return
		}
		next(w, r)
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequests logs method, path, status and duration of each request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
