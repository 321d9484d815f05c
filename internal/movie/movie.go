// Copyright (c) 2026 Cinerate. All rights reserved.

/*
Package movie handles the movie catalog: the titles that users rate.

It provides CRUD management of movie records with title uniqueness
enforcement and a cache-accelerated detail lookup.

# Architecture

  - Entities: Row (storage shape), Movie (API representation).
  - Repository: Generic repository binding over the movies table.
  - Service: Business rules (title uniqueness, audit stamping, caching).
*/
package movie

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// # Domain Entities

// Row mirrors the physical movies table. It never leaves the storage layer.
type Row struct {
	ID             uuid.UUID  `db:"id"`
	Title          string     `db:"title"`
	Description    *string    `db:"description"`
	CreatedAt      time.Time  `db:"createdat"`
	UpdatedAt      time.Time  `db:"updatedat"`
	DeletedAt      *time.Time `db:"deletedat"`
	LastModifiedBy *string    `db:"lastmodifiedby"`
}

// Movie is the API representation of a catalog entry.
//
// It is deliberately flat: no embedded ratings or raters, so representations
// never chase references. Callers needing related data compose it explicitly.
type Movie struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	LastModifiedBy *string   `json:"last_modified_by"`
}

// # Repository Contracts

// Query bundles the read options for listing movies.
type Query struct {
	// TitleSearch narrows results to titles matching the term (case-insensitive,
	// substring). Empty means no title restriction.
	TitleSearch string

	Offset int
	Limit  int
}

// Repository defines the persistence contract for the movie catalog.
type Repository interface {
	/*
		Create inserts a new movie and returns its full representation.

		Parameters:
		  - context: context.Context
		  - row: *Row (Writable fields populated)

		Returns:
		  - *Movie: Created representation with store-assigned timestamps
		  - error: apperr.Conflict on duplicate title, or storage failures
	*/
	Create(context context.Context, row *Row) (*Movie, error)

	/*
		Find lists movies matching the query, newest first.

		Returns:
		  - []*Movie: Matching page (empty slice when nothing matches)
		  - error: Storage failures
	*/
	Find(context context.Context, query Query) ([]*Movie, error)

	/*
		Count returns the total number of movies matching the query,
		ignoring pagination.
	*/
	Count(context context.Context, query Query) (int64, error)

	/*
		GetByID retrieves a single movie by its unique ID.

		Returns:
		  - *Movie: Loaded representation
		  - error: apperr.NotFound or storage failures
	*/
	GetByID(context context.Context, id uuid.UUID) (*Movie, error)

	/*
		GetByTitle retrieves a single movie by its exact title.

		Returns:
		  - *Movie: Loaded representation
		  - error: apperr.NotFound or storage failures
	*/
	GetByTitle(context context.Context, title string) (*Movie, error)

	/*
		Update applies the non-nil fields of input to an existing movie.

		Returns:
		  - *Movie: Updated representation
		  - error: apperr.NotFound, apperr.Conflict, or storage failures
	*/
	Update(context context.Context, id uuid.UUID, input UpdateInput) (*Movie, error)

	/*
		Delete soft-deletes a movie and returns its final representation.

		Returns:
		  - *Movie: The deleted representation
		  - error: apperr.NotFound or storage failures
	*/
	Delete(context context.Context, id uuid.UUID) (*Movie, error)

	/*
		WithTx returns a repository view bound to the given transaction.
	*/
	WithTx(tx pgx.Tx) Repository
}

// UpdateInput defines the mutable subset of movie fields.
// Nil pointers leave the current value untouched.
type UpdateInput struct {
	Title          *string
	Description    *string
	LastModifiedBy *string
}
