// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	jwt "github.com/golang-jwt/jwt/v5"
)

// DevModeIssuer produces the fixed development identity. It performs no
// gating itself: the caller owns the check of the auth-enabled and
// development-mode flags before invoking it. Gating lives with the caller so
// the security decision is never buried inside a convenience helper.
type DevModeIssuer struct{}

func (i *DevModeIssuer) IssueMockIdentity() *Identity {
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "dev-user"},
		Email:            "dev@bookverse.com",
		Name:             "Development User",
		Scope:            "openid profile email bookverse:api",
		Roles:            []string{"user", "admin"},
	}

	return NewIdentity(claims, map[string]interface{}{
		"sub":   "dev-user",
		"email": "dev@bookverse.com",
		"name":  "Development User",
		"scope": "openid profile email bookverse:api",
		"roles": []string{"user", "admin"},
	})
}

func NewDevModeIssuer() *DevModeIssuer {
	return &DevModeIssuer{}
}
