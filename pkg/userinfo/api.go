// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package userinfo

import (
	"encoding/json"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/bookverse/bookverse-core/internal/http/types"
	"github.com/bookverse/bookverse-core/internal/logging"
	"github.com/bookverse/bookverse-core/internal/monitoring"
	"github.com/bookverse/bookverse-core/internal/tracing"
	"github.com/bookverse/bookverse-core/pkg/authentication"
)

// UserInfo is the JSON view of the authenticated identity.
type UserInfo struct {
	UserID      string   `json:"user_id"`
	Email       string   `json:"email,omitempty"`
	DisplayName string   `json:"display_name,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	Scopes      []string `json:"scopes,omitempty"`
}

type API struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// RegisterEndpoints mounts the handlers on an already-authenticated router.
func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/userinfo", a.handleUserInfo)
}

func (a *API) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "userinfo.API.handleUserInfo")
	defer span.End()

	identity, ok := authentication.IdentityFromContext(r.Context())
	if !ok {
		// Reaching here means the route was mounted without the
		// authentication middleware.
		a.logger.Error("no identity in request context")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	resp := types.Response{
		Status: http.StatusOK,
		Data: UserInfo{
			UserID:      identity.UserID(),
			Email:       identity.Email(),
			DisplayName: identity.DisplayName(),
			Roles:       identity.Roles(),
			Scopes:      identity.Scopes(),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		a.logger.Errorf("failed to encode userinfo response: %v", err)
	}
}

func NewAPI(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
