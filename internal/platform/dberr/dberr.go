// Copyright (c) 2026 Cinerate. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Error Mapping
//
// Storage-specific errors (pgx sentinels and Postgres SQLSTATE codes) are
// mapped to domain-friendly [apperr.AppError] values so that handlers never
// branch on driver internals. The store's own constraints remain the true
// invariant guardians: a unique-constraint violation surfaces here as the
// same Conflict kind a service-level pre-check produces.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cinerate/cinerate/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the
// error type. The action string names the failed operation for log context.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// Already classified upstream; pass through unchanged.
	if apperr.IsAppError(err) {
		return err
	}

	// Row-count sentinels from pgx.
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if errors.Is(err, pgx.ErrTooManyRows) {
		return apperr.MultipleResults(wrapAction(err, action))
	}

	// Postgres SQLSTATE classification.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			conflict := apperr.Conflict("Resource already exists")
			conflict.Cause = wrapAction(err, action)
			return conflict
		case pgerrcode.ForeignKeyViolation:
			unprocessable := apperr.Unprocessable("Referenced resource does not exist")
			unprocessable.Cause = wrapAction(err, action)
			return unprocessable
		case pgerrcode.CheckViolation:
			invalid := apperr.ValidationError("Value violates a data constraint")
			invalid.Cause = wrapAction(err, action)
			return invalid
		}
	}

	// Unknown query errors become Internal Server Errors.
	return apperr.Internal(wrapAction(err, action))
}

// IsConflict reports whether err classifies as a uniqueness conflict,
// either from [Wrap] or from a service-level pre-check.
func IsConflict(err error) bool {
	return apperr.IsCode(err, apperr.CodeConflict)
}

// IsNotFound reports whether err classifies as a missing row.
func IsNotFound(err error) bool {
	return apperr.IsCode(err, apperr.CodeNotFound)
}

// wrapAction annotates the cause with the failed storage action.
func wrapAction(err error, action string) error {
	if action == "" {
		return err
	}
	return &actionError{action: action, err: err}
}

type actionError struct {
	action string
	err    error
}

func (e *actionError) Error() string { return e.action + ": " + e.err.Error() }
func (e *actionError) Unwrap() error { return e.err }
