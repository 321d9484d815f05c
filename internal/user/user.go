// Copyright (c) 2026 Cinerate. All rights reserved.

/*
Package user handles the registered raters of the platform.

It provides CRUD management of user records with email uniqueness
enforcement.

# Architecture

  - Entities: Row (storage shape), User (API representation).
  - Repository: Generic repository binding over the users table.
  - Service: Business rules (email normalization and uniqueness, audit
    stamping).
*/
package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// # Domain Entities

// Row mirrors the physical users table. It never leaves the storage layer.
type Row struct {
	ID             uuid.UUID  `db:"id"`
	Name           string     `db:"name"`
	Email          string     `db:"email"`
	CreatedAt      time.Time  `db:"createdat"`
	UpdatedAt      time.Time  `db:"updatedat"`
	DeletedAt      *time.Time `db:"deletedat"`
	LastModifiedBy *string    `db:"lastmodifiedby"`
}

// User is the API representation of a registered rater.
//
// It is deliberately flat: no embedded ratings, so representations never
// chase references. Callers needing related data compose it explicitly.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	LastModifiedBy *string   `json:"last_modified_by"`
}

// # Repository Contracts

// Query bundles the read options for listing users.
type Query struct {
	// NameSearch narrows results to names matching the term (case-insensitive,
	// substring). Empty means no name restriction.
	NameSearch string

	Offset int
	Limit  int
}

// Repository defines the persistence contract for users.
type Repository interface {
	/*
		Create inserts a new user and returns their full representation.

		Parameters:
		  - context: context.Context
		  - row: *Row (Writable fields populated, email already normalized)

		Returns:
		  - *User: Created representation with store-assigned timestamps
		  - error: apperr.Conflict on duplicate email, or storage failures
	*/
	Create(context context.Context, row *Row) (*User, error)

	/*
		Find lists users matching the query, newest first.

		Returns:
		  - []*User: Matching page (empty slice when nothing matches)
		  - error: Storage failures
	*/
	Find(context context.Context, query Query) ([]*User, error)

	/*
		Count returns the total number of users matching the query,
		ignoring pagination.
	*/
	Count(context context.Context, query Query) (int64, error)

	/*
		GetByID retrieves a single user by their unique ID.

		Returns:
		  - *User: Loaded representation
		  - error: apperr.NotFound or storage failures
	*/
	GetByID(context context.Context, id uuid.UUID) (*User, error)

	/*
		GetByEmail retrieves a single user by their normalized email.

		Returns:
		  - *User: Loaded representation
		  - error: apperr.NotFound or storage failures
	*/
	GetByEmail(context context.Context, email string) (*User, error)

	/*
		Update applies the non-nil fields of input to an existing user.

		Returns:
		  - *User: Updated representation
		  - error: apperr.NotFound, apperr.Conflict, or storage failures
	*/
	Update(context context.Context, id uuid.UUID, input UpdateInput) (*User, error)

	/*
		Delete soft-deletes a user and returns their final representation.

		Returns:
		  - *User: The deleted representation
		  - error: apperr.NotFound or storage failures
	*/
	Delete(context context.Context, id uuid.UUID) (*User, error)

	/*
		WithTx returns a repository view bound to the given transaction.
	*/
	WithTx(tx pgx.Tx) Repository
}

// UpdateInput defines the mutable subset of user fields.
// Nil pointers leave the current value untouched.
type UpdateInput struct {
	Name           *string
	Email          *string
	LastModifiedBy *string
}
