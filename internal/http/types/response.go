// Copyright 2025 BookVerse Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

// Response is the envelope used by all plain HTTP handlers.
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
