// Copyright (c) 2026 Cinerate. All rights reserved.

package rating

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cinerate/cinerate/internal/platform/apperr"
	"github.com/cinerate/cinerate/internal/platform/ctxutil"
	"github.com/cinerate/cinerate/internal/platform/dberr"
	"github.com/cinerate/cinerate/internal/platform/postgres"
	"github.com/cinerate/cinerate/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business logic for ratings.
//
// It verifies that the rated user and movie exist, enforces the
// one-rating-per-pair rule, and expands detail representations by composing
// the user and movie domains.
type Service struct {
	ratingRepository Repository
	users            UserReader
	movies           MovieReader
	txRunner         postgres.TxRunner
	logger           *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	ratingRepo Repository,
	users UserReader,
	movies MovieReader,
	txRunner postgres.TxRunner,
	logger *slog.Logger,
) *Service {
	return &Service{
		ratingRepository: ratingRepo,
		users:            users,
		movies:           movies,
		txRunner:         txRunner,
		logger:           logger,
	}
}

// conflictMessage is the single wording for a duplicate (user, movie) pair,
// shared by the pre-check and the constraint fallback so callers cannot
// distinguish which path rejected them.
const conflictMessage = "Rating already exists for this user/movie"

// callerID returns the audit identity of the current caller, nil when the
// request carried no identity headers.
func callerID(ctx context.Context) *string {
	if identity := ctxutil.GetIdentity(ctx); identity != nil {
		return &identity.UserID
	}
	return nil
}

// CreateInput defines the caller-writable fields of a new rating.
type CreateInput struct {
	UserID  uuid.UUID
	MovieID uuid.UUID
	Rating  float64
}

/*
Create records a user's score for a movie.

Description: Verifies both references exist, then runs a check-then-create
sequence inside one transaction so the user cannot rate the same movie
twice. Concurrent writers that slip past the check are caught by the
store's partial unique index and mapped to the identical conflict error.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Rating: The created representation
  - error: apperr.NotFound on a missing user or movie, apperr.Conflict on a
    duplicate pair, or storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Rating, error) {

	// Business: both ends of the link must exist
	if _, err := service.users.GetByID(context, input.UserID); err != nil {
		return nil, fmt.Errorf("rating_service_user_lookup_failed: %w", err)
	}
	if _, err := service.movies.GetByID(context, input.MovieID); err != nil {
		return nil, fmt.Errorf("rating_service_movie_lookup_failed: %w", err)
	}

	var created *Rating

	err := service.txRunner.RunTx(context, func(tx pgx.Tx) error {
		ratings := service.ratingRepository.WithTx(tx)

		// Business: one rating per user per movie
		if _, err := ratings.GetByUserAndMovie(context, input.UserID, input.MovieID); err == nil {
			return apperr.Conflict(conflictMessage)
		} else if !dberr.IsNotFound(err) {
			return fmt.Errorf("rating_service_create_lookup_failed: %w", err)
		}

		row := &Row{
			ID:             uuidv7.New(),
			UserID:         input.UserID,
			MovieID:        input.MovieID,
			Rating:         input.Rating,
			LastModifiedBy: callerID(context),
		}

		var err error
		created, err = ratings.Create(context, row)
		return err
	})

	if err != nil {
		// Constraint fallback: a concurrent insert won the race
		if dberr.IsConflict(err) {
			return nil, apperr.Conflict(conflictMessage)
		}
		return nil, fmt.Errorf("rating_service_create_failed: %w", err)
	}

	service.logger.Info("rating_created",
		slog.String("rating_id", created.ID.String()),
		slog.String("user_id", created.UserID.String()),
		slog.String("movie_id", created.MovieID.String()),
	)

	return created, nil
}

/*
Get retrieves one rating with its user and movie expanded.

Parameters:
  - context: context.Context
  - id: uuid.UUID

Returns:
  - *Detail: The expanded representation
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Get(context context.Context, id uuid.UUID) (*Detail, error) {

	found, err := service.ratingRepository.GetByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("rating_service_get_failed: %w", err)
	}

	return service.expand(context, found)
}

/*
ListByMovie retrieves a page of a movie's ratings with raters expanded.

Description: The movie is resolved once and shared across the page; each
rater is resolved individually.

Parameters:
  - context: context.Context
  - movieID: uuid.UUID
  - offset, limit: int

Returns:
  - []*Detail: The expanded page, newest first
  - int64: Total ratings for the movie ignoring pagination
  - error: apperr.NotFound on an unknown movie, or storage failures
*/
func (service *Service) ListByMovie(context context.Context, movieID uuid.UUID, offset, limit int) ([]*Detail, int64, error) {

	// Resolve the movie once for the whole page
	ratedMovie, err := service.movies.GetByID(context, movieID)
	if err != nil {
		return nil, 0, fmt.Errorf("rating_service_movie_lookup_failed: %w", err)
	}

	ratings, err := service.ratingRepository.ListByMovie(context, movieID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("rating_service_list_by_movie_failed: %w", err)
	}

	total, err := service.ratingRepository.CountByMovie(context, movieID)
	if err != nil {
		return nil, 0, fmt.Errorf("rating_service_count_by_movie_failed: %w", err)
	}

	details := make([]*Detail, 0, len(ratings))
	for _, r := range ratings {
		rater, err := service.users.GetByID(context, r.UserID)
		if err != nil {
			return nil, 0, fmt.Errorf("rating_service_user_lookup_failed: %w", err)
		}
		details = append(details, &Detail{Rating: *r, User: rater, Movie: ratedMovie})
	}

	return details, total, nil
}

/*
ListByUser retrieves a page of a user's ratings with movies expanded.

Description: The user is resolved once and shared across the page; each
movie is resolved individually.

Parameters:
  - context: context.Context
  - userID: uuid.UUID
  - offset, limit: int

Returns:
  - []*Detail: The expanded page, newest first
  - int64: Total ratings by the user ignoring pagination
  - error: apperr.NotFound on an unknown user, or storage failures
*/
func (service *Service) ListByUser(context context.Context, userID uuid.UUID, offset, limit int) ([]*Detail, int64, error) {

	// Resolve the user once for the whole page
	rater, err := service.users.GetByID(context, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("rating_service_user_lookup_failed: %w", err)
	}

	ratings, err := service.ratingRepository.ListByUser(context, userID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("rating_service_list_by_user_failed: %w", err)
	}

	total, err := service.ratingRepository.CountByUser(context, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("rating_service_count_by_user_failed: %w", err)
	}

	details := make([]*Detail, 0, len(ratings))
	for _, r := range ratings {
		ratedMovie, err := service.movies.GetByID(context, r.MovieID)
		if err != nil {
			return nil, 0, fmt.Errorf("rating_service_movie_lookup_failed: %w", err)
		}
		details = append(details, &Detail{Rating: *r, User: rater, Movie: ratedMovie})
	}

	return details, total, nil
}

/*
Update changes the score of an existing rating.

Parameters:
  - context: context.Context
  - id: uuid.UUID
  - value: float64 (New score)

Returns:
  - *Rating: The updated representation
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Update(context context.Context, id uuid.UUID, value float64) (*Rating, error) {

	updated, err := service.ratingRepository.Update(context, id, UpdateInput{
		Rating:         &value,
		LastModifiedBy: callerID(context),
	})
	if err != nil {
		return nil, fmt.Errorf("rating_service_update_failed: %w", err)
	}

	service.logger.Info("rating_updated", slog.String("rating_id", id.String()))

	return updated, nil
}

/*
Delete soft-deletes a rating.

Parameters:
  - context: context.Context
  - id: uuid.UUID

Returns:
  - *Rating: The final representation of the deleted rating
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, id uuid.UUID) (*Rating, error) {

	deleted, err := service.ratingRepository.Delete(context, id)
	if err != nil {
		return nil, fmt.Errorf("rating_service_delete_failed: %w", err)
	}

	service.logger.Warn("rating_deleted",
		slog.String("rating_id", id.String()),
		slog.String("user_id", deleted.UserID.String()),
		slog.String("movie_id", deleted.MovieID.String()),
	)

	return deleted, nil
}

// expand resolves the one-level user and movie references of a rating.
func (service *Service) expand(context context.Context, r *Rating) (*Detail, error) {

	rater, err := service.users.GetByID(context, r.UserID)
	if err != nil {
		return nil, fmt.Errorf("rating_service_user_lookup_failed: %w", err)
	}

	ratedMovie, err := service.movies.GetByID(context, r.MovieID)
	if err != nil {
		return nil, fmt.Errorf("rating_service_movie_lookup_failed: %w", err)
	}

	return &Detail{Rating: *r, User: rater, Movie: ratedMovie}, nil
}
