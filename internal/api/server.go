// Copyright 2025 James Ross
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the full picksim HTTP surface: the simulation
// endpoints plus /metrics, so a single server can be exposed without
// also running obs.StartHTTPServer's separate mux.
func NewRouter(h *Handlers) *mux.Router {
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")
	return router
}
