// Copyright (c) 2026 Cinerate. All rights reserved.

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
//
// Caller identity deliberately travels as an explicit context value injected
// by middleware, never as process-wide mutable state.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/cinerate/cinerate/internal/platform/ctxkey"
)

// Identity describes the caller of the current request, taken from the
// trusted user_id/tenant headers set by the upstream gateway.
type Identity struct {
	UserID string
	Tenant string
}

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Caller Identity

// WithIdentity returns a new context with the provided caller identity attached.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxkey.KeyIdentity, id)
}

// GetIdentity retrieves the [*Identity] from the [context.Context].
// Returns nil for anonymous requests.
func GetIdentity(ctx context.Context) *Identity {
	id, ok := ctx.Value(ctxkey.KeyIdentity).(*Identity)
	if !ok {
		return nil
	}
	return id
}
