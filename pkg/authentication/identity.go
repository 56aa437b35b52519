// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"fmt"
	"slices"
	"strings"
)

// Identity is the read-only view over verified token claims. It is only ever
// constructed from claims that passed signature, issuer, audience and expiry
// checks, or by the development-mode issuer.
type Identity struct {
	userID      string
	email       string
	displayName string
	roles       []string
	scopes      []string

	claims map[string]interface{}
}

func (i *Identity) UserID() string {
	return i.userID
}

func (i *Identity) Email() string {
	return i.email
}

// DisplayName returns the name claim, falling back to the email address.
func (i *Identity) DisplayName() string {
	return i.displayName
}

func (i *Identity) Roles() []string {
	return slices.Clone(i.roles)
}

func (i *Identity) Scopes() []string {
	return slices.Clone(i.scopes)
}

func (i *Identity) HasRole(role string) bool {
	return slices.Contains(i.roles, role)
}

func (i *Identity) HasScope(scope string) bool {
	return slices.Contains(i.scopes, scope)
}

// Claim exposes the raw claim bag for audit and debugging. Authorization
// decisions go through HasRole/HasScope, never through this accessor.
func (i *Identity) Claim(name string) (interface{}, bool) {
	v, ok := i.claims[name]
	return v, ok
}

func (i *Identity) String() string {
	return fmt.Sprintf("Identity(id=%s, email=%s)", i.userID, i.email)
}

func NewIdentity(claims *TokenClaims, rawClaims map[string]interface{}) *Identity {
	displayName := claims.Name
	if displayName == "" {
		displayName = claims.Email
	}

	return &Identity{
		userID:      claims.Subject,
		email:       claims.Email,
		displayName: displayName,
		roles:       slices.Clone(claims.Roles),
		scopes:      strings.Fields(claims.Scope),
		claims:      rawClaims,
	}
}
