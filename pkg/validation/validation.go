// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package validation offers the shared format checks used by service request
// models (email addresses, UUID identifiers, URLs).
package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func ValidateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("invalid email address: %q", email)
	}
	return nil
}

func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid uuid: %q", id)
	}
	return nil
}

func ValidateURL(rawURL string) error {
	if err := validate.Var(rawURL, "required,http_url"); err != nil {
		return fmt.Errorf("invalid url: %q", rawURL)
	}
	return nil
}

// ValidateStruct runs tag-based validation over a request model.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
