package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"raincheck/datasource"
	"raincheck/geocode"
	"raincheck/pipeline"
)

// Server exposes the rain pipeline over HTTP
type Server struct {
	pipeline       *pipeline.Pipeline
	server         *http.Server
	requestTimeout time.Duration
}

// NewServer creates a new API server around a pipeline. requestTimeout
// bounds each pipeline run end to end, including the fallback requests.
func NewServer(p *pipeline.Pipeline, port int, requestTimeout time.Duration) *Server {
	mux := http.NewServeMux()

	server := &Server{
		pipeline: p,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
		requestTimeout: requestTimeout,
	}

	mux.HandleFunc("/api/rain", server.handleRain)
	mux.HandleFunc("/api/health", server.handleHealthCheck)

	return server
}

// Start begins the API server
func (s *Server) Start() error {
	fmt.Printf("Starting API server on %s\n", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops the API server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// handleRain runs the full pipeline for the q query parameter
func (s *Server) handleRain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	units := r.URL.Query().Get("units")

	// The request context already ends when the client goes away, so a
	// user issuing a new search aborts the previous run mid-flight.
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	report, err := s.pipeline.RainToday(ctx, query, units)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(report)
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// writeError maps pipeline errors onto HTTP statuses with a JSON body
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var authErr *datasource.AuthError
	var apiErr *datasource.APIError
	var netErr *datasource.NetworkError
	switch {
	case errors.Is(err, geocode.ErrEmptyQuery), errors.Is(err, datasource.ErrInvalidCoordinates):
		status = http.StatusBadRequest
	case errors.Is(err, geocode.ErrPlaceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case errors.As(err, &authErr), errors.As(err, &apiErr), errors.As(err, &netErr):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		log.Printf("Pipeline error: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
	})
}
