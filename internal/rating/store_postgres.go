// Copyright (c) 2026 Cinerate. All rights reserved.

package rating

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cinerate/cinerate/internal/platform/database/schema"
	"github.com/cinerate/cinerate/internal/repo"
)

// PostgresRepository persists ratings through the generic repository.
type PostgresRepository struct {
	ratings *repo.Repository[Row, Rating]
}

// NewPostgresRepository binds the ratings table to the generic repository.
func NewPostgresRepository(db repo.DB) *PostgresRepository {
	return &PostgresRepository{
		ratings: repo.New(db, schema.Ratings.Descriptor(), insertRow, toRepresentation),
	}
}

// insertRow lists the writable columns for a new rating. Timestamps are
// store-assigned and read back via RETURNING.
func insertRow(row *Row) ([]string, []any) {
	return []string{
			schema.Ratings.ID,
			schema.Ratings.UserID,
			schema.Ratings.MovieID,
			schema.Ratings.Rating,
			schema.Ratings.LastModifiedBy,
		}, []any{
			row.ID,
			row.UserID,
			row.MovieID,
			row.Rating,
			row.LastModifiedBy,
		}
}

// toRepresentation maps a scanned row to its API representation.
func toRepresentation(row *Row) *Rating {
	return &Rating{
		ID:             row.ID,
		UserID:         row.UserID,
		MovieID:        row.MovieID,
		Rating:         row.Rating,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		LastModifiedBy: row.LastModifiedBy,
	}
}

func (store *PostgresRepository) Create(ctx context.Context, row *Row) (*Rating, error) {
	return store.ratings.Create(ctx, row)
}

func (store *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Rating, error) {
	return store.ratings.GetByID(ctx, id)
}

func (store *PostgresRepository) GetByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) (*Rating, error) {
	return store.ratings.FindOne(ctx,
		repo.Eq("user_id", userID),
		repo.Eq("movie_id", movieID),
	)
}

func (store *PostgresRepository) ListByMovie(ctx context.Context, movieID uuid.UUID, offset, limit int) ([]*Rating, error) {
	return store.ratings.Find(ctx, repo.Query{
		Filters: []repo.Filter{repo.Eq("movie_id", movieID)},
		Sort:    []repo.SortOption{{Field: "created_at", Direction: repo.Desc}},
		Offset:  &offset,
		Limit:   &limit,
	})
}

func (store *PostgresRepository) CountByMovie(ctx context.Context, movieID uuid.UUID) (int64, error) {
	return store.ratings.Count(ctx, repo.Eq("movie_id", movieID))
}

func (store *PostgresRepository) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*Rating, error) {
	return store.ratings.Find(ctx, repo.Query{
		Filters: []repo.Filter{repo.Eq("user_id", userID)},
		Sort:    []repo.SortOption{{Field: "created_at", Direction: repo.Desc}},
		Offset:  &offset,
		Limit:   &limit,
	})
}

func (store *PostgresRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return store.ratings.Count(ctx, repo.Eq("user_id", userID))
}

func (store *PostgresRepository) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Rating, error) {
	var sets []repo.Set
	if input.Rating != nil {
		sets = append(sets, repo.Set{Field: "rating", Value: *input.Rating})
	}
	if input.LastModifiedBy != nil {
		sets = append(sets, repo.Set{Field: "last_modified_by", Value: *input.LastModifiedBy})
	}
	return store.ratings.Update(ctx, id, sets...)
}

func (store *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) (*Rating, error) {
	return store.ratings.Delete(ctx, id)
}

func (store *PostgresRepository) WithTx(tx pgx.Tx) Repository {
	return &PostgresRepository{ratings: store.ratings.WithTx(tx)}
}
