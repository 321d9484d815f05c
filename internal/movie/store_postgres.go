// Copyright (c) 2026 Cinerate. All rights reserved.

package movie

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cinerate/cinerate/internal/platform/database/schema"
	"github.com/cinerate/cinerate/internal/repo"
)

// PostgresRepository persists movies through the generic repository.
type PostgresRepository struct {
	movies *repo.Repository[Row, Movie]
}

// NewPostgresRepository binds the movies table to the generic repository.
func NewPostgresRepository(db repo.DB) *PostgresRepository {
	return &PostgresRepository{
		movies: repo.New(db, schema.Movies.Descriptor(), insertRow, toRepresentation),
	}
}

// insertRow lists the writable columns for a new movie. Timestamps are
// store-assigned and read back via RETURNING.
func insertRow(row *Row) ([]string, []any) {
	return []string{
			schema.Movies.ID,
			schema.Movies.Title,
			schema.Movies.Description,
			schema.Movies.LastModifiedBy,
		}, []any{
			row.ID,
			row.Title,
			row.Description,
			row.LastModifiedBy,
		}
}

// toRepresentation maps a scanned row to its API representation.
func toRepresentation(row *Row) *Movie {
	return &Movie{
		ID:             row.ID,
		Title:          row.Title,
		Description:    row.Description,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		LastModifiedBy: row.LastModifiedBy,
	}
}

// queryFilters renders the domain query into repository filters.
func queryFilters(query Query) []repo.Filter {
	var filters []repo.Filter
	if query.TitleSearch != "" {
		filters = append(filters, repo.Op("title", "ilike", "%"+query.TitleSearch+"%"))
	}
	return filters
}

func (store *PostgresRepository) Create(ctx context.Context, row *Row) (*Movie, error) {
	return store.movies.Create(ctx, row)
}

func (store *PostgresRepository) Find(ctx context.Context, query Query) ([]*Movie, error) {
	return store.movies.Find(ctx, repo.Query{
		Filters: queryFilters(query),
		Sort:    []repo.SortOption{{Field: "created_at", Direction: repo.Desc}},
		Offset:  &query.Offset,
		Limit:   &query.Limit,
	})
}

func (store *PostgresRepository) Count(ctx context.Context, query Query) (int64, error) {
	return store.movies.Count(ctx, queryFilters(query)...)
}

func (store *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Movie, error) {
	return store.movies.GetByID(ctx, id)
}

func (store *PostgresRepository) GetByTitle(ctx context.Context, title string) (*Movie, error) {
	return store.movies.FindOne(ctx, repo.Eq("title", title))
}

func (store *PostgresRepository) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Movie, error) {
	var sets []repo.Set
	if input.Title != nil {
		sets = append(sets, repo.Set{Field: "title", Value: *input.Title})
	}
	if input.Description != nil {
		sets = append(sets, repo.Set{Field: "description", Value: *input.Description})
	}
	if input.LastModifiedBy != nil {
		sets = append(sets, repo.Set{Field: "last_modified_by", Value: *input.LastModifiedBy})
	}
	return store.movies.Update(ctx, id, sets...)
}

func (store *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) (*Movie, error) {
	return store.movies.Delete(ctx, id)
}

func (store *PostgresRepository) WithTx(tx pgx.Tx) Repository {
	return &PostgresRepository{movies: store.movies.WithTx(tx)}
}
