// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"encoding/json"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/bookverse/bookverse-core/internal/http/types"
	"github.com/bookverse/bookverse-core/internal/logging"
	"github.com/bookverse/bookverse-core/internal/monitoring"
	"github.com/bookverse/bookverse-core/internal/tracing"
	"github.com/bookverse/bookverse-core/internal/version"
)

// ReadinessCheck reports whether a dependency is ready to serve.
type ReadinessCheck func(r *http.Request) error

type API struct {
	checks []ReadinessCheck

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/status", a.alive)
	mux.Get("/api/v0/status/ready", a.ready)
	mux.Get("/api/v0/version", a.version)
}

func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	a.writeResponse(w, http.StatusOK, types.Response{Status: http.StatusOK, Message: "ok"})
}

func (a *API) ready(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "status.API.ready")
	defer span.End()

	for _, check := range a.checks {
		if err := check(r); err != nil {
			a.logger.Errorf("readiness check failed: %v", err)
			a.writeResponse(w, http.StatusServiceUnavailable, types.Response{
				Status:  http.StatusServiceUnavailable,
				Message: "dependency not ready",
			})
			return
		}
	}

	a.writeResponse(w, http.StatusOK, types.Response{Status: http.StatusOK, Message: "ok"})
}

func (a *API) version(w http.ResponseWriter, r *http.Request) {
	a.writeResponse(w, http.StatusOK, types.Response{
		Status: http.StatusOK,
		Data:   map[string]string{"version": version.Version},
	})
}

func (a *API) writeResponse(w http.ResponseWriter, status int, resp types.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		a.logger.Errorf("failed to encode status response: %v", err)
	}
}

func NewAPI(checks []ReadinessCheck, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		checks:  checks,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
