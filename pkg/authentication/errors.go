// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"fmt"
	"net/http"
)

// Error kinds for token validation failures
const (
	ErrCodeMalformedToken     = "MALFORMED_TOKEN"
	ErrCodeUnknownSigningKey  = "UNKNOWN_SIGNING_KEY"
	ErrCodeInvalidToken       = "INVALID_SIGNATURE_OR_CLAIMS"
	ErrCodeMissingScope       = "MISSING_REQUIRED_SCOPE"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// ValidationError is the only error type surfaced by the validation pipeline.
// Callers branch on Code, never on message contents.
type ValidationError struct {
	Code       string            // Machine-readable error kind
	Message    string            // Human-readable error message
	Op         string            // Operation that failed (e.g. "TokenValidator.VerifyToken")
	Metadata   map[string]string // Additional context, never raw token material
	Underlying error             // The underlying error if any
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Is implements error matching for errors.Is, comparing kinds
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func (e *ValidationError) Unwrap() error {
	return e.Underlying
}

// Status maps the error kind to the HTTP status callers must answer with.
// Only provider outages map to 503; every token problem is a plain 401.
func (e *ValidationError) Status() int {
	if e.Code == ErrCodeServiceUnavailable {
		return http.StatusServiceUnavailable
	}
	return http.StatusUnauthorized
}

// Constructor functions for the five error kinds

func NewMalformedTokenError(op, message string) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeMalformedToken,
		Message: message,
		Op:      op,
	}
}

func NewUnknownSigningKeyError(op, kid string) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeUnknownSigningKey,
		Message: "no signing key matches the token key id",
		Op:      op,
		Metadata: map[string]string{
			"kid": kid,
		},
	}
}

func NewInvalidTokenError(op, message string, underlying error) *ValidationError {
	return &ValidationError{
		Code:       ErrCodeInvalidToken,
		Message:    message,
		Op:         op,
		Underlying: underlying,
	}
}

func NewMissingScopeError(op, subject, scope string) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeMissingScope,
		Message: "token is missing a required scope",
		Op:      op,
		Metadata: map[string]string{
			"sub":   subject,
			"scope": scope,
		},
	}
}

func NewServiceUnavailableError(op string, underlying error) *ValidationError {
	return &ValidationError{
		Code:       ErrCodeServiceUnavailable,
		Message:    "authentication service unavailable",
		Op:         op,
		Underlying: underlying,
	}
}
