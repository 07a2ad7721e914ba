// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ClientIDCtxKey is the key used to store the authenticated client id in
// the context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.ClientIDCtxKey, "dvd-cli")
var ClientIDCtxKey = contextKey("clientID")

// TraceIDCtxKey is the key used to store the request trace id.
var TraceIDCtxKey = contextKey("traceID")

// GetClientIDFromContext retrieves the authenticated client id.
//
// ok is false when the value is missing or has an unexpected type.
func GetClientIDFromContext(ctx context.Context) (string, bool) {
	clientID, ok := ctx.Value(ClientIDCtxKey).(string)
	return clientID, ok
}

// GetTraceIDFromContext retrieves the request trace id.
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(TraceIDCtxKey).(string)
	return traceID, ok
}
