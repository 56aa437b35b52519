// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
)

type DiscoveryInterface interface {
	// Metadata returns the provider configuration, fetching it at most once
	// per process lifetime
	Metadata(ctx context.Context) (*ProviderMetadata, error)
	// ClearCache drops the memoized configuration
	ClearCache()
}

type KeyCacheInterface interface {
	// Keys returns the current key set, refreshing it when older than the
	// configured cache duration
	Keys(ctx context.Context, metadata *ProviderMetadata) (*JWKSet, error)
	// ClearCache forces the next Keys call to refetch
	ClearCache()
}

type TokenVerifierInterface interface {
	// VerifyToken verifies a raw bearer token and returns the authenticated identity
	VerifyToken(ctx context.Context, rawToken string) (*Identity, error)
}
