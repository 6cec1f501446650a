package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/pep299/template-blog-publisher/internal/archive"
	"github.com/pep299/template-blog-publisher/internal/logger"
	"github.com/pep299/template-blog-publisher/internal/publisher"
	"github.com/pep299/template-blog-publisher/internal/render"
)

const version = "v1.0.0"

// Publisher runs one publishing run.
type Publisher interface {
	Run(ctx context.Context) (*publisher.Result, error)
}

// Options configures the HTTP server.
type Options struct {
	AuthToken   string
	CORSOrigins []string
}

// Server holds the HTTP handlers and their dependencies
type Server struct {
	publisher Publisher
	drafts    archive.Store
	preview   *render.Renderer
	logger    *logger.Logger
	opts      Options
}

// NewServer creates a new HTTP server. Previews are rendered without images.
func NewServer(pub Publisher, drafts archive.Store, log *logger.Logger, opts Options) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	log = log.With("service", "http")
	return &Server{
		publisher: pub,
		drafts:    drafts,
		preview:   render.NewRenderer(render.NoImages{}, logger.NewNop()),
		logger:    log,
		opts:      opts,
	}
}

// SetupRoutes configures HTTP routes
func (s *Server) SetupRoutes() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(s.loggingMiddleware)

	api.HandleFunc("/health", s.healthHandler).Methods("GET")
	api.HandleFunc("/kinds", s.kindsHandler).Methods("GET")
	api.HandleFunc("/schemas/{kind}", s.schemaHandler).Methods("GET")
	api.HandleFunc("/drafts", s.listDraftsHandler).Methods("GET")
	api.HandleFunc("/drafts/{id}", s.getDraftHandler).Methods("GET")

	api.Handle("/render", s.authMiddleware(http.HandlerFunc(s.renderHandler))).Methods("POST")
	api.Handle("/publish", s.authMiddleware(http.HandlerFunc(s.publishHandler))).Methods("POST")

	origins := s.opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return c.Handler(r)
}

// authMiddleware requires the configured bearer token. An empty token
// disables the check.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.AuthToken != "" {
			want := []byte("Bearer " + s.opts.AuthToken)
			got := []byte(r.Header.Get("Authorization"))
			if subtle.ConstantTimeCompare(want, got) != 1 {
				WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap the ResponseWriter to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"duration", time.Since(start),
		)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
