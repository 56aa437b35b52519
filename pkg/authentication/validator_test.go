// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	jwt "github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"
)

// providerFixture is an in-process identity provider serving the discovery
// document and a mutable key set, and signing tokens against it.
type providerFixture struct {
	t      *testing.T
	server *httptest.Server

	signKey *rsa.PrivateKey

	mu   sync.Mutex
	keys []jose.JSONWebKey

	jwksRequests atomic.Int32
}

func newProviderFixture(t *testing.T) *providerFixture {
	t.Helper()

	f := &providerFixture{t: t}
	key, webKey := generateSigningKey(t, "kid-1")
	f.signKey = key
	f.keys = []jose.JSONWebKey{webKey}

	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/openid_configuration", func(w http.ResponseWriter, r *http.Request) {
		document := map[string]interface{}{
			"issuer":   f.server.URL,
			"jwks_uri": f.server.URL + "/jwks",
		}
		if err := json.NewEncoder(w).Encode(document); err != nil {
			t.Errorf("failed to encode discovery document: %v", err)
		}
	})
	mux.HandleFunc("/jwks", func(w http.ResponseWriter, r *http.Request) {
		f.jwksRequests.Add(1)
		f.mu.Lock()
		set := jose.JSONWebKeySet{Keys: slices.Clone(f.keys)}
		f.mu.Unlock()
		if err := json.NewEncoder(w).Encode(set); err != nil {
			t.Errorf("failed to encode jwks document: %v", err)
		}
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)

	return f
}

func (f *providerFixture) addKey(webKey jose.JSONWebKey) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.keys = append(f.keys, webKey)
}

// signToken issues a token that passes every check, then applies mutate so
// each test breaks exactly one thing.
func (f *providerFixture) signToken(key *rsa.PrivateKey, kid string, mutate func(jwt.MapClaims)) string {
	f.t.Helper()

	claims := jwt.MapClaims{
		"iss":   f.server.URL,
		"aud":   "bookverse:api",
		"sub":   "u1",
		"email": "reader@bookverse.com",
		"name":  "Avid Reader",
		"scope": "openid profile email bookverse:api",
		"roles": []string{"user"},
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Add(-time.Minute).Unix(),
	}
	if mutate != nil {
		mutate(claims)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}

	signed, err := token.SignedString(key)
	if err != nil {
		f.t.Fatalf("failed to sign token: %v", err)
	}

	return signed
}

func newValidatorMocks(t *testing.T, ctrl *gomock.Controller) (*MockTracingInterface, *MockMonitorInterface, *MockLoggerInterface, *MockSecurityLoggerInterface) {
	t.Helper()

	ctx := context.Background()
	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).Return(ctx, trace.SpanFromContext(ctx)).AnyTimes()

	mockMonitor := NewMockMonitorInterface(ctrl)
	mockMonitor.EXPECT().SetDependencyAvailability(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

	mockSecurity := NewMockSecurityLoggerInterface(ctrl)
	mockLogger.EXPECT().Security().Return(mockSecurity).AnyTimes()

	return mockTracer, mockMonitor, mockLogger, mockSecurity
}

func newTestValidator(f *providerFixture, ctrl *gomock.Controller, config *Config) (*TokenValidator, *MockSecurityLoggerInterface) {
	mockTracer, mockMonitor, mockLogger, mockSecurity := newValidatorMocks(f.t, ctrl)

	discovery := NewDiscoveryClient(config, mockTracer, mockMonitor, mockLogger)
	keys := NewJWKSCache(config, mockTracer, mockMonitor, mockLogger)

	return NewTokenValidator(config, discovery, keys, mockTracer, mockMonitor, mockLogger), mockSecurity
}

func fixtureConfig(f *providerFixture) *Config {
	return NewConfig(f.server.URL, "bookverse:api", "RS256", "bookverse:api", 3600, true, false)
}

func TestTokenValidator_VerifyToken_ValidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newProviderFixture(t)
	validator, mockSecurity := newTestValidator(f, ctrl, fixtureConfig(f))
	mockSecurity.EXPECT().AuthnSuccess("u1")

	token := f.signToken(f.signKey, "kid-1", nil)

	identity, err := validator.VerifyToken(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifyToken returned error: %v", err)
	}

	if identity.UserID() != "u1" {
		t.Errorf("expected user id %q, got %q", "u1", identity.UserID())
	}
	if identity.Email() != "reader@bookverse.com" {
		t.Errorf("expected email %q, got %q", "reader@bookverse.com", identity.Email())
	}
	if !identity.HasScope("bookverse:api") {
		t.Error("expected identity to carry the bookverse:api scope")
	}
	if !identity.HasRole("user") {
		t.Error("expected identity to carry the user role")
	}
	if v, ok := identity.Claim("iss"); !ok || v != f.server.URL {
		t.Errorf("expected raw iss claim %q, got %v", f.server.URL, v)
	}
}

func TestTokenValidator_VerifyToken_ClaimFailures(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(jwt.MapClaims)
		expectedCode string
	}{
		{
			name: "Expired token",
			mutate: func(claims jwt.MapClaims) {
				claims["exp"] = time.Now().Add(-time.Hour).Unix()
			},
			expectedCode: ErrCodeInvalidToken,
		},
		{
			name: "Missing expiry",
			mutate: func(claims jwt.MapClaims) {
				delete(claims, "exp")
			},
			expectedCode: ErrCodeInvalidToken,
		},
		{
			name: "Not yet valid",
			mutate: func(claims jwt.MapClaims) {
				claims["nbf"] = time.Now().Add(time.Hour).Unix()
			},
			expectedCode: ErrCodeInvalidToken,
		},
		{
			name: "Wrong audience",
			mutate: func(claims jwt.MapClaims) {
				claims["aud"] = "other:api"
			},
			expectedCode: ErrCodeInvalidToken,
		},
		{
			name: "Wrong issuer",
			mutate: func(claims jwt.MapClaims) {
				claims["iss"] = "https://evil.example.com"
			},
			expectedCode: ErrCodeInvalidToken,
		},
		{
			name: "Missing required scope",
			mutate: func(claims jwt.MapClaims) {
				claims["scope"] = "openid profile email"
			},
			expectedCode: ErrCodeMissingScope,
		},
		{
			name: "Scope is not matched by substring",
			mutate: func(claims jwt.MapClaims) {
				claims["scope"] = "bookverse:api-extended"
			},
			expectedCode: ErrCodeMissingScope,
		},
		{
			name: "Missing subject",
			mutate: func(claims jwt.MapClaims) {
				delete(claims, "sub")
			},
			expectedCode: ErrCodeMalformedToken,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newProviderFixture(t)
			validator, mockSecurity := newTestValidator(f, ctrl, fixtureConfig(f))
			mockSecurity.EXPECT().AuthnFailure(gomock.Any(), test.expectedCode)

			token := f.signToken(f.signKey, "kid-1", test.mutate)

			_, err := validator.VerifyToken(context.Background(), token)
			if !errors.Is(err, &ValidationError{Code: test.expectedCode}) {
				t.Errorf("expected %s, got %v", test.expectedCode, err)
			}
		})
	}
}

func TestTokenValidator_VerifyToken_MalformedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newProviderFixture(t)
	validator, mockSecurity := newTestValidator(f, ctrl, fixtureConfig(f))
	mockSecurity.EXPECT().AuthnFailure(gomock.Any(), ErrCodeMalformedToken)

	_, err := validator.VerifyToken(context.Background(), "not-a-jwt")
	if !errors.Is(err, &ValidationError{Code: ErrCodeMalformedToken}) {
		t.Errorf("expected MALFORMED_TOKEN, got %v", err)
	}

	if got := f.jwksRequests.Load(); got != 0 {
		t.Errorf("a malformed token must fail before any jwks fetch, got %d requests", got)
	}
}

func TestTokenValidator_VerifyToken_MissingKid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newProviderFixture(t)
	validator, mockSecurity := newTestValidator(f, ctrl, fixtureConfig(f))
	mockSecurity.EXPECT().AuthnFailure(gomock.Any(), ErrCodeMalformedToken)

	token := f.signToken(f.signKey, "", nil)

	_, err := validator.VerifyToken(context.Background(), token)
	if !errors.Is(err, &ValidationError{Code: ErrCodeMalformedToken}) {
		t.Errorf("expected MALFORMED_TOKEN for a token without kid, got %v", err)
	}
}

func TestTokenValidator_VerifyToken_UnknownKidRefreshesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newProviderFixture(t)
	validator, mockSecurity := newTestValidator(f, ctrl, fixtureConfig(f))
	mockSecurity.EXPECT().AuthnFailure(gomock.Any(), ErrCodeUnknownSigningKey)

	ghostKey, _ := generateSigningKey(t, "kid-ghost")
	token := f.signToken(ghostKey, "kid-ghost", nil)

	_, err := validator.VerifyToken(context.Background(), token)
	if !errors.Is(err, &ValidationError{Code: ErrCodeUnknownSigningKey}) {
		t.Errorf("expected UNKNOWN_SIGNING_KEY, got %v", err)
	}

	// Initial fetch plus exactly one forced refresh.
	if got := f.jwksRequests.Load(); got != 2 {
		t.Errorf("expected exactly 2 jwks requests, got %d", got)
	}
}

func TestTokenValidator_VerifyToken_RotatedKeyFoundAfterRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newProviderFixture(t)
	validator, mockSecurity := newTestValidator(f, ctrl, fixtureConfig(f))
	mockSecurity.EXPECT().AuthnSuccess("u1")

	// Warm the key cache with the original key set.
	warm := f.signToken(f.signKey, "kid-1", nil)
	mockSecurity.EXPECT().AuthnSuccess("u1")
	if _, err := validator.VerifyToken(context.Background(), warm); err != nil {
		t.Fatalf("failed to warm the key cache: %v", err)
	}

	// The provider rotates in a new key; the cached set does not have it yet.
	rotatedKey, rotatedWebKey := generateSigningKey(t, "kid-2")
	f.addKey(rotatedWebKey)

	token := f.signToken(rotatedKey, "kid-2", nil)

	identity, err := validator.VerifyToken(context.Background(), token)
	if err != nil {
		t.Fatalf("expected the rotated key to be found after refresh, got %v", err)
	}
	if identity.UserID() != "u1" {
		t.Errorf("expected user id %q, got %q", "u1", identity.UserID())
	}

	if got := f.jwksRequests.Load(); got != 2 {
		t.Errorf("expected the rotation to cost exactly 1 extra jwks request, got %d total", got)
	}
}

func TestTokenValidator_VerifyToken_RejectsAlgorithmConfusion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newProviderFixture(t)
	validator, mockSecurity := newTestValidator(f, ctrl, fixtureConfig(f))
	mockSecurity.EXPECT().AuthnFailure(gomock.Any(), ErrCodeInvalidToken)

	// An HS256 token naming a known RSA kid must be rejected on the declared
	// algorithm, before any verification against the key material.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": f.server.URL,
		"aud": "bookverse:api",
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token.Header["kid"] = "kid-1"
	signed, err := token.SignedString([]byte("shared-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	_, err = validator.VerifyToken(context.Background(), signed)
	if !errors.Is(err, &ValidationError{Code: ErrCodeInvalidToken}) {
		t.Errorf("expected INVALID_SIGNATURE_OR_CLAIMS, got %v", err)
	}
}

func TestTokenValidator_VerifyToken_TamperedPayloadRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newProviderFixture(t)
	validator, mockSecurity := newTestValidator(f, ctrl, fixtureConfig(f))
	mockSecurity.EXPECT().AuthnFailure(gomock.Any(), ErrCodeInvalidToken)

	// Sign with a key the provider never published under kid-1.
	impostorKey, _ := generateSigningKey(t, "kid-1")
	token := f.signToken(impostorKey, "kid-1", nil)

	_, err := validator.VerifyToken(context.Background(), token)
	if !errors.Is(err, &ValidationError{Code: ErrCodeInvalidToken}) {
		t.Errorf("expected INVALID_SIGNATURE_OR_CLAIMS, got %v", err)
	}
}

func TestTokenValidator_VerifyToken_ProviderOutage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newProviderFixture(t)
	config := fixtureConfig(f)
	f.server.Close()

	validator, mockSecurity := newTestValidator(f, ctrl, config)
	mockSecurity.EXPECT().AuthnFailure(gomock.Any(), ErrCodeServiceUnavailable)

	_, err := validator.VerifyToken(context.Background(), f.signToken(f.signKey, "kid-1", nil))
	if !errors.Is(err, &ValidationError{Code: ErrCodeServiceUnavailable}) {
		t.Errorf("expected SERVICE_UNAVAILABLE, got %v", err)
	}
}

func TestTokenValidator_VerifyToken_EmptyAudienceDisablesCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newProviderFixture(t)
	config := NewConfig(f.server.URL, "", "RS256", "", 3600, true, false)
	validator, mockSecurity := newTestValidator(f, ctrl, config)
	mockSecurity.EXPECT().AuthnSuccess("u1")

	token := f.signToken(f.signKey, "kid-1", func(claims jwt.MapClaims) {
		delete(claims, "aud")
		delete(claims, "scope")
	})

	if _, err := validator.VerifyToken(context.Background(), token); err != nil {
		t.Errorf("expected empty audience and scope config to disable those checks, got %v", err)
	}
}
