// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"slices"
	"strings"

	jose "github.com/go-jose/go-jose/v4"
	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/bookverse/bookverse-core/internal/logging"
	"github.com/bookverse/bookverse-core/internal/monitoring"
	"github.com/bookverse/bookverse-core/internal/tracing"
)

// TokenClaims are the claims this core inspects, taken verbatim from a
// cryptographically verified token body. Everything else rides along in the
// Identity's raw claim bag for audit only.
type TokenClaims struct {
	jwt.RegisteredClaims

	Email string   `json:"email,omitempty"`
	Name  string   `json:"name,omitempty"`
	Scope string   `json:"scope,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

var _ TokenVerifierInterface = (*TokenValidator)(nil)

// TokenValidator runs the validation pipeline: discovery, key fetch, key
// selection, signature and claims verification, identity construction.
type TokenValidator struct {
	config    *Config
	discovery DiscoveryInterface
	keys      KeyCacheInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (v *TokenValidator) VerifyToken(ctx context.Context, rawToken string) (*Identity, error) {
	ctx, span := v.tracer.Start(ctx, "authentication.TokenValidator.VerifyToken")
	defer span.End()

	identity, err := v.validate(ctx, rawToken)
	if err != nil {
		v.logFailure(err)
		return nil, err
	}

	v.logger.Security().AuthnSuccess(identity.UserID())

	return identity, nil
}

func (v *TokenValidator) validate(ctx context.Context, rawToken string) (*Identity, error) {
	header, err := parseUnverifiedHeader(rawToken)
	if err != nil {
		return nil, err
	}

	metadata, err := v.discovery.Metadata(ctx)
	if err != nil {
		return nil, err
	}

	key, err := v.selectKeyWithRotationRetry(ctx, header, metadata)
	if err != nil {
		return nil, err
	}

	claims, err := v.verifySignatureAndClaims(rawToken, key, metadata)
	if err != nil {
		return nil, err
	}

	if claims.Subject == "" {
		return nil, NewMalformedTokenError("TokenValidator.VerifyToken", "token missing sub claim")
	}

	if v.config.RequiredScope != "" && !slices.Contains(strings.Fields(claims.Scope), v.config.RequiredScope) {
		return nil, NewMissingScopeError("TokenValidator.VerifyToken", claims.Subject, v.config.RequiredScope)
	}

	return NewIdentity(claims, unverifiedClaimBag(rawToken)), nil
}

// selectKeyWithRotationRetry retries key selection exactly once after a forced
// cache refresh, covering a key that rotated in between cache refreshes. No
// further retries: wrapping retries would defeat the bounded-latency guarantee
// on request-handling paths.
func (v *TokenValidator) selectKeyWithRotationRetry(ctx context.Context, header *UnverifiedHeader, metadata *ProviderMetadata) (*jose.JSONWebKey, error) {
	set, err := v.keys.Keys(ctx, metadata)
	if err != nil {
		return nil, err
	}

	key, err := SelectKey(header, set)
	if err == nil || !errors.Is(err, &ValidationError{Code: ErrCodeUnknownSigningKey}) {
		return key, err
	}

	v.logger.Debugf("unknown signing key %q, forcing JWKS refresh", header.KeyID)
	v.keys.ClearCache()

	set, refreshErr := v.keys.Keys(ctx, metadata)
	if refreshErr != nil {
		return nil, refreshErr
	}

	return SelectKey(header, set)
}

func (v *TokenValidator) verifySignatureAndClaims(rawToken string, key *jose.JSONWebKey, metadata *ProviderMetadata) (*TokenClaims, error) {
	opts := []jwt.ParserOption{
		// Declared alg must match the configured algorithm, preventing
		// algorithm-confusion attacks.
		jwt.WithValidMethods([]string{v.config.Algorithm}),
		jwt.WithIssuer(metadata.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if v.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(v.config.Audience))
	}
	if v.config.Leeway > 0 {
		opts = append(opts, jwt.WithLeeway(v.config.Leeway))
	}

	claims := new(TokenClaims)
	_, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
		return key.Key, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, NewMalformedTokenError("TokenValidator.VerifyToken", "token is structurally invalid")
		}
		return nil, NewInvalidTokenError("TokenValidator.VerifyToken", "signature or claims verification failed", err)
	}

	return claims, nil
}

func (v *TokenValidator) logFailure(err error) {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		v.logger.Errorf("token validation failed: %v", err)
		return
	}

	switch verr.Code {
	case ErrCodeServiceUnavailable:
		v.logger.Errorf("token validation failed: %v", verr)
	case ErrCodeUnknownSigningKey:
		v.logger.Warnf("token validation failed: %v (kid %q)", verr, verr.Metadata["kid"])
	default:
		v.logger.Debugf("token validation failed: %v", verr)
	}

	v.logger.Security().AuthnFailure(verr.Metadata["sub"], verr.Code)
}

// parseUnverifiedHeader extracts alg and kid from the token header without
// verifying the signature.
func parseUnverifiedHeader(rawToken string) (*UnverifiedHeader, error) {
	token, _, err := jwt.NewParser().ParseUnverified(rawToken, jwt.MapClaims{})
	if err != nil {
		return nil, NewMalformedTokenError("TokenValidator.VerifyToken", "token is structurally invalid")
	}

	header := &UnverifiedHeader{Alg: token.Method.Alg()}
	if kid, ok := token.Header["kid"].(string); ok {
		header.KeyID = kid
	}

	return header, nil
}

// unverifiedClaimBag re-decodes the claim body as a free-form map. Called only
// after the same bytes passed signature verification.
func unverifiedClaimBag(rawToken string) map[string]interface{} {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(rawToken, claims); err != nil {
		return map[string]interface{}{}
	}
	return claims
}

func NewTokenValidator(config *Config, discovery DiscoveryInterface, keys KeyCacheInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *TokenValidator {
	return &TokenValidator{
		config:    config,
		discovery: discovery,
		keys:      keys,
		tracer:    tracer,
		monitor:   monitor,
		logger:    logger,
	}
}
