// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/bookverse/bookverse-core/internal/logging"
	"github.com/bookverse/bookverse-core/internal/monitoring"
	"github.com/bookverse/bookverse-core/internal/tracing"
	"github.com/bookverse/bookverse-core/pkg/authentication"
	"github.com/bookverse/bookverse-core/pkg/metrics"
	"github.com/bookverse/bookverse-core/pkg/status"
	"github.com/bookverse/bookverse-core/pkg/userinfo"
)

func NewRouter(
	jwtVerifier authentication.TokenVerifierInterface,
	readinessChecks []status.ReadinessCheck,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
		middleware.RequestLogger(logging.NewLogFormatter(logger)), // LogFormatter will only work if logger is set to DEBUG level
	)

	router.Use(middlewares...)

	// Register unprotected HTTP handlers
	status.NewAPI(readinessChecks, tracer, monitor, logger).RegisterEndpoints(router)
	metrics.NewAPI(logger).RegisterEndpoints(router)

	// Everything below the authenticated mount requires a valid bearer token
	authenticatedRouter := chi.NewRouter()
	authenticatedRouter.Use(authentication.NewMiddleware(jwtVerifier, tracer, monitor, logger).Authenticate())
	userinfo.NewAPI(tracer, monitor, logger).RegisterEndpoints(authenticatedRouter)

	router.Mount("/api/v0", authenticatedRouter)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
