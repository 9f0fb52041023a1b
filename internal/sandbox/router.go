package sandbox

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns the HTTP handler serving the API under /api/v1 and
// Prometheus metrics under /metrics.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recoveryMiddleware)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.Use(s.apiKeyMiddleware)

	// Endpoints that need only the API key
	v1.HandleFunc("/test/ping", s.handlePing).Methods(http.MethodGet)
	v1.HandleFunc("/account/login", s.handleLogin).Methods(http.MethodPost)

	// Endpoints that need a session
	authed := v1.NewRoute().Subrouter()
	authed.Use(s.sessionMiddleware)
	authed.HandleFunc("/tender/create", s.handleDictionaries).Methods(http.MethodGet)
	authed.HandleFunc("/tender/create", s.handleCreate).Methods(http.MethodPost)
	authed.HandleFunc("/tender/assign", s.handleAssign).Methods(http.MethodPost)
	authed.HandleFunc("/tender/{id}", s.handleGetTender).Methods(http.MethodGet)

	return router
}
