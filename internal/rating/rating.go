// Copyright (c) 2026 Cinerate. All rights reserved.

/*
Package rating handles the scores users give to movies.

A rating links one user to one movie with a numeric score; each user rates
a given movie at most once.

# Architecture

  - Entities: Row (storage shape), Rating (flat API representation),
    Detail (rating with its user and movie expanded one level).
  - Repository: Generic repository binding over the ratings table.
  - Service: Business rules (referential checks, one-rating-per-pair
    uniqueness, audit stamping) composing the user and movie domains.
*/
package rating

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cinerate/cinerate/internal/movie"
	"github.com/cinerate/cinerate/internal/user"
)

// # Domain Entities

// Row mirrors the physical ratings table. It never leaves the storage layer.
type Row struct {
	ID             uuid.UUID  `db:"id"`
	UserID         uuid.UUID  `db:"userid"`
	MovieID        uuid.UUID  `db:"movieid"`
	Rating         float64    `db:"rating"`
	CreatedAt      time.Time  `db:"createdat"`
	UpdatedAt      time.Time  `db:"updatedat"`
	DeletedAt      *time.Time `db:"deletedat"`
	LastModifiedBy *string    `db:"lastmodifiedby"`
}

// Rating is the flat API representation of a score. Related entities appear
// as IDs only; [Detail] carries the one-level expansion.
type Rating struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	MovieID        uuid.UUID `json:"movie_id"`
	Rating         float64   `json:"rating"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	LastModifiedBy *string   `json:"last_modified_by"`
}

// Detail expands a rating with its user and movie, exactly one level deep.
// The embedded representations are themselves flat, so expansion can never
// recurse.
type Detail struct {
	Rating
	User  *user.User   `json:"user"`
	Movie *movie.Movie `json:"movie"`
}

// # Repository Contracts

// Repository defines the persistence contract for ratings.
type Repository interface {
	/*
		Create inserts a new rating and returns its full representation.

		Returns:
		  - *Rating: Created representation with store-assigned timestamps
		  - error: apperr.Conflict on a duplicate (user, movie) pair,
		    apperr.Unprocessable on a broken reference, or storage failures
	*/
	Create(context context.Context, row *Row) (*Rating, error)

	/*
		GetByID retrieves a single rating by its unique ID.
	*/
	GetByID(context context.Context, id uuid.UUID) (*Rating, error)

	/*
		GetByUserAndMovie retrieves the unique rating a user gave a movie.

		Returns:
		  - *Rating: Loaded representation
		  - error: apperr.NotFound when the user has not rated the movie
	*/
	GetByUserAndMovie(context context.Context, userID, movieID uuid.UUID) (*Rating, error)

	/*
		ListByMovie lists a movie's ratings, newest first.
	*/
	ListByMovie(context context.Context, movieID uuid.UUID, offset, limit int) ([]*Rating, error)

	/*
		CountByMovie returns the number of ratings a movie has received.
	*/
	CountByMovie(context context.Context, movieID uuid.UUID) (int64, error)

	/*
		ListByUser lists a user's ratings, newest first.
	*/
	ListByUser(context context.Context, userID uuid.UUID, offset, limit int) ([]*Rating, error)

	/*
		CountByUser returns the number of ratings a user has given.
	*/
	CountByUser(context context.Context, userID uuid.UUID) (int64, error)

	/*
		Update changes the score of an existing rating.
	*/
	Update(context context.Context, id uuid.UUID, input UpdateInput) (*Rating, error)

	/*
		Delete soft-deletes a rating and returns its final representation.
	*/
	Delete(context context.Context, id uuid.UUID) (*Rating, error)

	/*
		WithTx returns a repository view bound to the given transaction.
	*/
	WithTx(tx pgx.Tx) Repository
}

// UpdateInput defines the mutable subset of rating fields.
// Nil pointers leave the current value untouched.
type UpdateInput struct {
	Rating         *float64
	LastModifiedBy *string
}

// # Lookup Contracts

// UserReader resolves user representations for detail expansion.
type UserReader interface {
	GetByID(context context.Context, id uuid.UUID) (*user.User, error)
}

// MovieReader resolves movie representations for detail expansion.
type MovieReader interface {
	GetByID(context context.Context, id uuid.UUID) (*movie.Movie, error)
}
