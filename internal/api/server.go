// Package api exposes the fingerprint engine over HTTP: single-input
// generation, SVG and shader-uniform rendering, batch scans, and the
// taxonomy listing. The service is stateless; every response is a pure
// function of the request.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/p4nthera115/fingerprint-erc8004/internal/fingerprint"
	"github.com/p4nthera115/fingerprint-erc8004/internal/scan"
)

// Server handles HTTP requests.
type Server struct {
	digester fingerprint.Digester
	scanner  *scan.Scanner
	logger   *log.Logger
}

// NewServer creates a new API server backed by the given digest provider.
func NewServer(d fingerprint.Digester) *Server {
	return &Server{
		digester: d,
		scanner:  scan.NewScanner(d),
		logger:   log.New(os.Stderr, "", log.LstdFlags|log.LUTC),
	}
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Heartbeat("/health"))
	r.Use(s.corsMiddleware)
	r.Use(s.loggingMiddleware)

	r.Post("/fingerprint", s.handleFingerprint)
	r.Post("/render/svg", s.handleRenderSVG)
	r.Post("/render/uniforms", s.handleUniforms)
	r.Post("/scan", s.handleScan)
	r.Get("/patterns", s.handlePatterns)
	r.Post("/digest/hash", s.handleDigestHash)

	return r
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a structured error response.
func (s *Server) writeError(w http.ResponseWriter, status int, errType, message string, context map[string]any) {
	s.writeJSON(w, status, ErrorResponse{
		Type:    errType,
		Message: message,
		Context: context,
	})
}
