// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"

	"github.com/bookverse/bookverse-core/internal/logging"
	"github.com/bookverse/bookverse-core/internal/monitoring"
	"github.com/bookverse/bookverse-core/internal/tracing"
)

const (
	wellKnownPath = "/.well-known/openid_configuration"
	fetchTimeout  = 10 * time.Second
)

var otelHTTPClient = http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

// ProviderMetadata is the provider configuration document. Immutable once
// fetched, owned by the DiscoveryClient.
type ProviderMetadata struct {
	Issuer                string   `json:"issuer"`
	AuthorizationEndpoint string   `json:"authorization_endpoint"`
	TokenEndpoint         string   `json:"token_endpoint"`
	UserinfoEndpoint      string   `json:"userinfo_endpoint"`
	JWKSURI               string   `json:"jwks_uri"`
	ScopesSupported       []string `json:"scopes_supported"`
	IDTokenSigningAlgs    []string `json:"id_token_signing_alg_values_supported"`

	// DemoMode marks a synthetic document produced because the provider was
	// unreachable in development mode, so downstream logging can flag it.
	DemoMode bool `json:"-"`
}

var _ DiscoveryInterface = (*DiscoveryClient)(nil)

type DiscoveryClient struct {
	authority       string
	developmentMode bool
	client          *http.Client

	mu       sync.RWMutex
	metadata *ProviderMetadata
	gen      uint64
	flight   singleflight.Group

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (c *DiscoveryClient) Metadata(ctx context.Context) (*ProviderMetadata, error) {
	ctx, span := c.tracer.Start(ctx, "authentication.DiscoveryClient.Metadata")
	defer span.End()

	if metadata := c.cached(); metadata != nil {
		return metadata, nil
	}

	// Collapse concurrent first callers into one outbound fetch. The fetch
	// runs detached from the caller context so one cancelled waiter does not
	// fail the fetch for everybody else.
	v, err, _ := c.flight.Do("metadata", func() (interface{}, error) {
		if metadata := c.cached(); metadata != nil {
			return metadata, nil
		}
		return c.fetch(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}

	return v.(*ProviderMetadata), nil
}

func (c *DiscoveryClient) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.metadata = nil
	c.gen++
	c.flight.Forget("metadata")
}

func (c *DiscoveryClient) cached() *ProviderMetadata {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.metadata
}

func (c *DiscoveryClient) generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.gen
}

func (c *DiscoveryClient) fetch(ctx context.Context) (*ProviderMetadata, error) {
	gen := c.generation()

	metadata, err := c.fetchDocument(ctx)
	if err != nil {
		c.setProviderAvailability(0)

		if c.developmentMode {
			c.logger.Warnf("identity provider unreachable, using demo metadata: %v", err)
			metadata = demoMetadata(c.authority)
			c.store(metadata, gen)
			return metadata, nil
		}

		c.logger.Errorf("failed to fetch OIDC configuration: %v", err)
		return nil, NewServiceUnavailableError("DiscoveryClient.Metadata", err)
	}

	c.setProviderAvailability(1)
	c.store(metadata, gen)

	return metadata, nil
}

func (c *DiscoveryClient) fetchDocument(ctx context.Context) (*ProviderMetadata, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	url := strings.TrimSuffix(c.authority, "/") + wellKnownPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discovery endpoint returned %d", resp.StatusCode)
	}

	metadata := new(ProviderMetadata)
	if err := json.NewDecoder(resp.Body).Decode(metadata); err != nil {
		return nil, fmt.Errorf("invalid discovery document: %w", err)
	}

	if metadata.Issuer == "" || metadata.JWKSURI == "" {
		return nil, fmt.Errorf("discovery document missing issuer or jwks_uri")
	}

	return metadata, nil
}

// store installs a fetched document unless ClearCache ran while the fetch was
// in flight: a result snapshotted before the clear must not resurrect data
// that was just invalidated, so the next Metadata call refetches instead.
func (c *DiscoveryClient) store(metadata *ProviderMetadata, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		return
	}

	c.metadata = metadata
}

func (c *DiscoveryClient) setProviderAvailability(value float64) {
	labels := map[string]string{"dependency": "identity-provider"}
	if err := c.monitor.SetDependencyAvailability(labels, value); err != nil {
		c.logger.Errorf("failed to record provider availability: %v", err)
	}
}

// demoMetadata synthesizes a configuration document from the authority URL
// using the provider's standard relative paths.
func demoMetadata(authority string) *ProviderMetadata {
	authority = strings.TrimSuffix(authority, "/")

	return &ProviderMetadata{
		Issuer:                authority,
		AuthorizationEndpoint: authority + "/auth",
		TokenEndpoint:         authority + "/token",
		UserinfoEndpoint:      authority + "/userinfo",
		JWKSURI:               authority + "/.well-known/jwks.json",
		ScopesSupported:       []string{"openid", "profile", "email", "bookverse:api"},
		IDTokenSigningAlgs:    []string{"RS256"},
		DemoMode:              true,
	}
}

func NewDiscoveryClient(config *Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *DiscoveryClient {
	return &DiscoveryClient{
		authority:       config.Authority,
		developmentMode: config.DevelopmentMode,
		client:          &otelHTTPClient,
		tracer:          tracer,
		monitor:         monitor,
		logger:          logger,
	}
}
