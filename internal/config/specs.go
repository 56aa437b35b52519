// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	AuthEnabled       bool   `envconfig:"auth_enabled" default:"true"`
	DevelopmentMode   bool   `envconfig:"development_mode" default:"false"`
	OIDCAuthority     string `envconfig:"oidc_authority" default:"https://dev-auth.bookverse.com"`
	OIDCAudience      string `envconfig:"oidc_audience" default:"bookverse:api"`
	JWTAlgorithm      string `envconfig:"jwt_algorithm" default:"RS256"`
	RequiredScope     string `envconfig:"required_scope" default:"bookverse:api"`
	JWKSCacheDuration int    `envconfig:"jwks_cache_duration" default:"3600"`

	DSN               string `envconfig:"DSN" default:""`
	DBMaxConns        int32  `envconfig:"db_max_conns" default:"10"`
	DBMinConns        int32  `envconfig:"db_min_conns" default:"0"`
	DBMaxConnLifetime int    `envconfig:"db_max_conn_lifetime_seconds" default:"3600"`
	DBMaxConnIdleTime int    `envconfig:"db_max_conn_idle_time_seconds" default:"900"`
}
