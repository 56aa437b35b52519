// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"fmt"

	"github.com/bookverse/bookverse-core/internal/logging"
	"github.com/bookverse/bookverse-core/internal/monitoring"
	"github.com/bookverse/bookverse-core/internal/tracing"
)

// NewAuthenticator wires a token verifier based on configuration. With
// authentication enabled it returns the full validation pipeline; disabled
// authentication is only allowed in development mode, where the fixed
// development identity is issued instead. Disabling authentication outside
// development mode is a configuration error, never a silent bypass.
func NewAuthenticator(
	config *Config,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (TokenVerifierInterface, error) {
	if !config.Enabled {
		if !config.DevelopmentMode {
			return nil, fmt.Errorf("AUTH_ENABLED is false but DEVELOPMENT_MODE is not enabled")
		}
		logger.Warn("authentication is disabled, issuing the development identity for all requests")
		return NewNoopVerifier(NewDevModeIssuer()), nil
	}

	if config.Authority == "" {
		return nil, fmt.Errorf("AUTH_ENABLED is true but OIDC_AUTHORITY is not configured")
	}

	discovery := NewDiscoveryClient(config, tracer, monitor, logger)
	keys := NewJWKSCache(config, tracer, monitor, logger)

	logger.Infof("JWT authentication is enabled for authority %s", config.Authority)

	return NewTokenValidator(config, discovery, keys, tracer, monitor, logger), nil
}
