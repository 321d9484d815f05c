// Copyright (c) 2026 Cinerate. All rights reserved.

package movie

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

// Service orchestrates business logic for the movie catalog.
//
// It enforces title uniqueness, stamps the audit trail with the caller
// identity, and keeps the detail cache coherent across mutations.
type Service struct {
	movieRepository Repository
	txRunner        postgres.TxRunner
	cache           DetailCache
	logger          *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	movieRepo Repository,
	txRunner postgres.TxRunner,
	cache DetailCache,
	logger *slog.Logger,
) *Service {
	return &Service{
		movieRepository: movieRepo,
		txRunner:        txRunner,
		cache:           cache,
		logger:          logger,
	}
}

// conflictMessage is the single wording for duplicate titles, shared by the
// pre-check and the constraint fallback so callers cannot distinguish which
// path rejected them.
func conflictMessage(title string) string {
	return fmt.Sprintf("Movie already exists with title %s", title)
}

// callerID returns the audit identity of the current caller, nil when the
// request carried no identity headers.
func callerID(ctx context.Context) *string {
	if identity := ctxutil.GetIdentity(ctx); identity != nil {
		return &identity.UserID
	}
	return nil
}

// CreateInput defines the caller-writable fields of a new movie.
type CreateInput struct {
	Title       string
	Description *string
}

/*
Create registers a new movie in the catalog.

Description: Runs a check-then-create sequence inside one transaction.
Concurrent writers that slip past the check are caught by the store's
partial unique index and mapped to the identical conflict error.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Movie: The created representation
  - error: apperr.Conflict on duplicate title, or storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Movie, error) {

	var created *Movie

	err := service.txRunner.RunTx(context, func(tx pgx.Tx) error {
		movies := service.movieRepository.WithTx(tx)

		// Business: reject duplicate titles before attempting the insert
		if _, err := movies.GetByTitle(context, input.Title); err == nil {
			return apperr.Conflict(conflictMessage(input.Title))
		} else if !dberr.IsNotFound(err) {
			return fmt.Errorf("movie_service_create_lookup_failed: %w", err)
		}

		row := &Row{
			ID:             uuidv7.New(),
			Title:          input.Title,
			Description:    input.Description,
			LastModifiedBy: callerID(context),
		}

		var err error
		created, err = movies.Create(context, row)
		return err
	})

	if err != nil {
		// Constraint fallback: a concurrent insert won the race
		if dberr.IsConflict(err) {
			return nil, apperr.Conflict(conflictMessage(input.Title))
		}
		return nil, fmt.Errorf("movie_service_create_failed: %w", err)
	}

	service.logger.Info("movie_created",
		slog.String("movie_id", created.ID.String()),
		slog.String("title", created.Title),
	)

	return created, nil
}

/*
List retrieves a page of movies matching the query, newest first.

Parameters:
  - context: context.Context
  - query: Query (Optional title search plus pagination)

Returns:
  - []*Movie: The matching page (empty slice when nothing matches)
  - int64: Total matches ignoring pagination
  - error: Storage failures
*/
func (service *Service) List(context context.Context, query Query) ([]*Movie, int64, error) {

	movies, err := service.movieRepository.Find(context, query)
	if err != nil {
		return nil, 0, fmt.Errorf("movie_service_list_failed: %w", err)
	}

	total, err := service.movieRepository.Count(context, query)
	if err != nil {
		return nil, 0, fmt.Errorf("movie_service_count_failed: %w", err)
	}

	return movies, total, nil
}

/*
Get retrieves a single movie by ID through the detail cache.

Description: Attempts a cache read first. On a miss the database is
consulted and the result is re-cached with the standard TTL.

Parameters:
  - context: context.Context
  - id: uuid.UUID

Returns:
  - *Movie: The representation
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Get(context context.Context, id uuid.UUID) (*Movie, error) {

	// Fast path: serve from cache
	if cached, hit := service.cache.Get(context, id.String()); hit {
		return cached, nil
	}

	found, err := service.movieRepository.GetByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("movie_service_get_failed: %w", err)
	}

	// Re-populate the cache for subsequent reads
	service.cache.Set(context, found)

	return found, nil
}

/*
Update applies a partial set of changes to an existing movie.

Description: When the title changes, uniqueness is re-checked inside the
same transaction as the write. The detail cache entry is invalidated on
success so the next read observes the new state.

Parameters:
  - context: context.Context
  - id: uuid.UUID
  - input: UpdateInput

Returns:
  - *Movie: The updated representation
  - error: apperr.NotFound, apperr.Conflict, or storage failures
*/
func (service *Service) Update(context context.Context, id uuid.UUID, input UpdateInput) (*Movie, error) {

	input.LastModifiedBy = callerID(context)

	var updated *Movie

	err := service.txRunner.RunTx(context, func(tx pgx.Tx) error {
		movies := service.movieRepository.WithTx(tx)

		// Business: a renamed movie must not collide with an existing title
		if input.Title != nil {
			existing, err := movies.GetByTitle(context, *input.Title)
			if err == nil && existing.ID != id {
				return apperr.Conflict(conflictMessage(*input.Title))
			}
			if err != nil && !dberr.IsNotFound(err) {
				return fmt.Errorf("movie_service_update_lookup_failed: %w", err)
			}
		}

		var err error
		updated, err = movies.Update(context, id, input)
		return err
	})

	if err != nil {
		if input.Title != nil && dberr.IsConflict(err) {
			return nil, apperr.Conflict(conflictMessage(*input.Title))
		}
		return nil, fmt.Errorf("movie_service_update_failed: %w", err)
	}

	// Drop the stale cache entry
	service.cache.Invalidate(context, id.String())

	service.logger.Info("movie_updated", slog.String("movie_id", id.String()))

	return updated, nil
}

/*
Delete soft-deletes a movie from the catalog.

Parameters:
  - context: context.Context
  - id: uuid.UUID

Returns:
  - *Movie: The final representation of the deleted movie
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, id uuid.UUID) (*Movie, error) {

	deleted, err := service.movieRepository.Delete(context, id)
	if err != nil {
		return nil, fmt.Errorf("movie_service_delete_failed: %w", err)
	}

	// Drop the stale cache entry
	service.cache.Invalidate(context, id.String())

	service.logger.Warn("movie_deleted",
		slog.String("movie_id", id.String()),
		slog.String("title", deleted.Title),
	)

	return deleted, nil
}
