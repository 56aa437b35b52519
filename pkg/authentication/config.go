// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"time"
)

const (
	defaultAlgorithm = "RS256"
	defaultCacheTTL  = 3600 * time.Second
)

type Config struct {
	// Authority is the base URL of the identity provider.
	Authority string
	// Audience is the audience the token must carry. Empty disables the check.
	Audience string
	// Algorithm is the only accepted signing algorithm.
	Algorithm string
	// RequiredScope must appear in the token's space-separated scope claim.
	// Empty disables the check.
	RequiredScope string
	// JWKSCacheTTL bounds how long a fetched key set is served without refresh.
	JWKSCacheTTL time.Duration
	// Leeway is the clock-skew tolerance for time-based claims. Zero by default.
	Leeway time.Duration

	Enabled         bool
	DevelopmentMode bool
}

func NewConfig(authority, audience, algorithm, requiredScope string, cacheTTLSeconds int, enabled, developmentMode bool) *Config {
	c := &Config{
		Authority:       authority,
		Audience:        audience,
		Algorithm:       algorithm,
		RequiredScope:   requiredScope,
		JWKSCacheTTL:    time.Duration(cacheTTLSeconds) * time.Second,
		Enabled:         enabled,
		DevelopmentMode: developmentMode,
	}

	if c.Algorithm == "" {
		c.Algorithm = defaultAlgorithm
	}
	if cacheTTLSeconds <= 0 {
		c.JWKSCacheTTL = defaultCacheTTL
	}

	return c
}
