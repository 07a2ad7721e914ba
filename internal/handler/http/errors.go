// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrMissingCredentials is returned by the auth middleware when the
	// request carries neither an "Authorization" nor an "X-API-Key" header.
	ErrMissingCredentials = errors.New("missing `Authorization` or `X-API-Key` header")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidQuery is returned when a query parameter has the wrong type.
	ErrInvalidQuery = errors.New("invalid query parameter")

	// ErrUnknownFormat is returned for an unsupported `format` query value.
	ErrUnknownFormat = errors.New("unknown format")
)
