// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	"golang.org/x/sync/singleflight"

	"github.com/bookverse/bookverse-core/internal/logging"
	"github.com/bookverse/bookverse-core/internal/monitoring"
	"github.com/bookverse/bookverse-core/internal/tracing"
)

// JWKSet is a fetched key set plus its fetch time. Replaced wholesale on
// refresh, never mutated in place.
type JWKSet struct {
	jose.JSONWebKeySet

	FetchedAt time.Time
}

var _ KeyCacheInterface = (*JWKSCache)(nil)

// JWKSCache serves the provider's key set with time-based refresh and
// stale-on-error fallback. A provider hiccup must not lock out all users, so a
// failed refresh keeps serving the previous non-empty set; the trade-off is
// that a rotated-out key stays accepted for at most one cache interval.
type JWKSCache struct {
	ttl    time.Duration
	client *http.Client

	mu      sync.RWMutex
	current *JWKSet
	gen     uint64
	flight  singleflight.Group

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (c *JWKSCache) Keys(ctx context.Context, metadata *ProviderMetadata) (*JWKSet, error) {
	ctx, span := c.tracer.Start(ctx, "authentication.JWKSCache.Keys")
	defer span.End()

	if set := c.cached(); set != nil && !c.expired(set) {
		return set, nil
	}

	// Concurrent cache misses collapse into a single fetch; the fetch is
	// detached from the caller context so it still completes and populates
	// the cache when one waiter goes away.
	v, err, _ := c.flight.Do("jwks", func() (interface{}, error) {
		if set := c.cached(); set != nil && !c.expired(set) {
			return set, nil
		}
		return c.refresh(context.WithoutCancel(ctx), metadata)
	})
	if err != nil {
		return nil, err
	}

	return v.(*JWKSet), nil
}

func (c *JWKSCache) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = nil
	c.gen++
	c.flight.Forget("jwks")
}

func (c *JWKSCache) cached() *JWKSet {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.current
}

func (c *JWKSCache) generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.gen
}

func (c *JWKSCache) expired(set *JWKSet) bool {
	return time.Since(set.FetchedAt) > c.ttl
}

func (c *JWKSCache) refresh(ctx context.Context, metadata *ProviderMetadata) (*JWKSet, error) {
	gen := c.generation()

	set, err := c.fetch(ctx, metadata.JWKSURI)
	if err != nil {
		c.setJWKSAvailability(0)

		// Stale-on-error: a previous non-empty set keeps the service up.
		if stale := c.cached(); stale != nil && len(stale.Keys) > 0 {
			c.logger.Warnf("failed to refresh JWKS, serving cached keys: %v", err)
			return stale, nil
		}

		c.logger.Errorf("failed to fetch JWKS: %v", err)
		return nil, NewServiceUnavailableError("JWKSCache.Keys", err)
	}

	c.setJWKSAvailability(1)
	c.store(set, gen)

	return set, nil
}

// store installs a fetched set unless ClearCache ran while the fetch was in
// flight: a result snapshotted before the clear must not resurrect data that
// was just invalidated, so the next Keys call refetches instead.
func (c *JWKSCache) store(set *JWKSet, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		return
	}

	c.current = set
}

func (c *JWKSCache) fetch(ctx context.Context, jwksURI string) (*JWKSet, error) {
	if jwksURI == "" {
		return nil, fmt.Errorf("no jwks_uri in provider metadata")
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jwksURI, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jwks endpoint returned %d", resp.StatusCode)
	}

	set := new(JWKSet)
	if err := json.NewDecoder(resp.Body).Decode(&set.JSONWebKeySet); err != nil {
		return nil, fmt.Errorf("invalid jwks document: %w", err)
	}

	// An empty set must never replace good keys.
	if len(set.Keys) == 0 {
		return nil, fmt.Errorf("jwks document contains no keys")
	}

	set.FetchedAt = time.Now()

	return set, nil
}

func (c *JWKSCache) setJWKSAvailability(value float64) {
	labels := map[string]string{"dependency": "jwks"}
	if err := c.monitor.SetDependencyAvailability(labels, value); err != nil {
		c.logger.Errorf("failed to record jwks availability: %v", err)
	}
}

func NewJWKSCache(config *Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *JWKSCache {
	return &JWKSCache{
		ttl:     config.JWKSCacheTTL,
		client:  &otelHTTPClient,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// UnverifiedHeader is the token header before any verification. It is only
// trusted to pick a key, never for claims.
type UnverifiedHeader struct {
	Alg   string
	KeyID string
}

// SelectKey scans the set in stored order for the key named by the header's
// kid. There is deliberately no fallback to "first key" or "any key with a
// matching algorithm": ambiguous key selection is a security hole.
func SelectKey(header *UnverifiedHeader, set *JWKSet) (*jose.JSONWebKey, error) {
	if header.KeyID == "" {
		return nil, NewMalformedTokenError("SelectKey", "token header missing kid")
	}

	for i := range set.Keys {
		if set.Keys[i].KeyID == header.KeyID {
			return &set.Keys[i], nil
		}
	}

	return nil, NewUnknownSigningKeyError("SelectKey", header.KeyID)
}
