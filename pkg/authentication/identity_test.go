// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"testing"

	jwt "github.com/golang-jwt/jwt/v5"
)

func TestNewIdentity(t *testing.T) {
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
		Email:            "reader@bookverse.com",
		Name:             "Avid Reader",
		Scope:            "openid profile bookverse:api",
		Roles:            []string{"user", "librarian"},
	}
	rawClaims := map[string]interface{}{"sub": "u1", "custom": "value"}

	identity := NewIdentity(claims, rawClaims)

	if identity.UserID() != "u1" {
		t.Errorf("expected user id %q, got %q", "u1", identity.UserID())
	}
	if identity.Email() != "reader@bookverse.com" {
		t.Errorf("expected email %q, got %q", "reader@bookverse.com", identity.Email())
	}
	if identity.DisplayName() != "Avid Reader" {
		t.Errorf("expected display name %q, got %q", "Avid Reader", identity.DisplayName())
	}

	if !identity.HasRole("librarian") {
		t.Error("expected identity to have the librarian role")
	}
	if identity.HasRole("admin") {
		t.Error("expected identity not to have the admin role")
	}

	if !identity.HasScope("bookverse:api") {
		t.Error("expected identity to have the bookverse:api scope")
	}
	if identity.HasScope("bookverse:admin") {
		t.Error("expected identity not to have the bookverse:admin scope")
	}

	if v, ok := identity.Claim("custom"); !ok || v != "value" {
		t.Errorf("expected custom claim %q, got %v (ok=%v)", "value", v, ok)
	}
	if _, ok := identity.Claim("missing"); ok {
		t.Error("expected missing claim lookup to report not found")
	}
}

func TestNewIdentity_DisplayNameFallsBackToEmail(t *testing.T) {
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
		Email:            "reader@bookverse.com",
	}

	identity := NewIdentity(claims, nil)

	if identity.DisplayName() != "reader@bookverse.com" {
		t.Errorf("expected display name to fall back to email, got %q", identity.DisplayName())
	}
}

func TestIdentity_AccessorsReturnCopies(t *testing.T) {
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
		Scope:            "openid",
		Roles:            []string{"user"},
	}
	identity := NewIdentity(claims, nil)

	identity.Roles()[0] = "admin"
	identity.Scopes()[0] = "bookverse:admin"

	if identity.HasRole("admin") {
		t.Error("mutating the returned roles slice must not change the identity")
	}
	if identity.HasScope("bookverse:admin") {
		t.Error("mutating the returned scopes slice must not change the identity")
	}
}

func TestIdentity_String(t *testing.T) {
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
		Email:            "reader@bookverse.com",
	}
	identity := NewIdentity(claims, nil)

	expected := "Identity(id=u1, email=reader@bookverse.com)"
	if identity.String() != expected {
		t.Errorf("String() = %q, expected %q", identity.String(), expected)
	}
}
