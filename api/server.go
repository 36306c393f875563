package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tn-weather/gateway"
	"tn-weather/models"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Gateway is the subset of *gateway.Gateway the server needs.
type Gateway interface {
	Snapshot(ctx context.Context, city string) models.Snapshot
	CheckStatus(ctx context.Context) models.APIStatus
	HasCredential() bool
}

// StatusResponse is returned by GET /api/status.
type StatusResponse struct {
	API        models.APIStatus        `json:"api"`
	Connection models.ConnectionStatus `json:"connection"`
}

// CitiesResponse is returned by GET /api/cities.
type CitiesResponse struct {
	Cities []string `json:"cities"`
	Count  int      `json:"count"`
}

// Server represents the API server
type Server struct {
	gateway    Gateway
	store      *SnapshotStore
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a new API server
func NewServer(addr string, gw Gateway, store *SnapshotStore, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		gateway: gw,
		store:   store,
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /api/weather/{city}", s.handleGetWeather)
	mux.HandleFunc("GET /api/weather/{city}/cached", s.handleGetCachedWeather)
	mux.HandleFunc("GET /api/cities", s.handleGetCities)
	mux.HandleFunc("GET /api/status", s.handleGetStatus)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleGetWeather runs a fetch-or-fallback cycle for the city and stores the result.
// Unsupported cities still get a (mock) snapshot.
func (s *Server) handleGetWeather(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.PathValue("city"))
	if city == "" {
		writeError(w, http.StatusBadRequest, "City not specified")
		return
	}

	// A client that disconnects mid-fetch must not turn a good vendor read
	// into a stored mock snapshot. The gateway's own timeout still bounds it.
	seq := s.store.Issue()
	snap := s.gateway.Snapshot(context.WithoutCancel(r.Context()), city)
	snap.Seq = seq

	if !s.store.Update(snap) {
		s.logger.Debug("newer snapshot already stored", "city", city, "seq", seq)
	}

	writeJSON(w, http.StatusOK, snap)
}

// handleGetCachedWeather returns the latest stored snapshot without fetching.
func (s *Server) handleGetCachedWeather(w http.ResponseWriter, r *http.Request) {
	city := r.PathValue("city")

	snap, ok := s.store.Get(city)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("No weather data found for city: %s", city))
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleGetCities(w http.ResponseWriter, _ *http.Request) {
	cities := gateway.AvailableCities()
	writeJSON(w, http.StatusOK, CitiesResponse{Cities: cities, Count: len(cities)})
}

func (s *Server) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	status := s.gateway.CheckStatus(r.Context())
	writeJSON(w, http.StatusOK, StatusResponse{
		API:        status,
		Connection: gateway.ConnectionStatus(status),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"apiKey":       s.gateway.HasCredential(),
		"cachedCities": len(s.store.Cities()),
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client may have gone away
}
