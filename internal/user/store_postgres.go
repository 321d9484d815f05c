// Copyright (c) 2026 Cinerate. All rights reserved.

package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cinerate/cinerate/internal/platform/database/schema"
	"github.com/cinerate/cinerate/internal/repo"
)

// PostgresRepository persists users through the generic repository.
type PostgresRepository struct {
	users *repo.Repository[Row, User]
}

// NewPostgresRepository binds the users table to the generic repository.
func NewPostgresRepository(db repo.DB) *PostgresRepository {
	return &PostgresRepository{
		users: repo.New(db, schema.Users.Descriptor(), insertRow, toRepresentation),
	}
}

// insertRow lists the writable columns for a new user. Timestamps are
// store-assigned and read back via RETURNING.
func insertRow(row *Row) ([]string, []any) {
	return []string{
			schema.Users.ID,
			schema.Users.Name,
			schema.Users.Email,
			schema.Users.LastModifiedBy,
		}, []any{
			row.ID,
			row.Name,
			row.Email,
			row.LastModifiedBy,
		}
}

// toRepresentation maps a scanned row to its API representation.
func toRepresentation(row *Row) *User {
	return &User{
		ID:             row.ID,
		Name:           row.Name,
		Email:          row.Email,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		LastModifiedBy: row.LastModifiedBy,
	}
}

// queryFilters renders the domain query into repository filters.
func queryFilters(query Query) []repo.Filter {
	var filters []repo.Filter
	if query.NameSearch != "" {
		filters = append(filters, repo.Op("name", "ilike", "%"+query.NameSearch+"%"))
	}
	return filters
}

func (store *PostgresRepository) Create(ctx context.Context, row *Row) (*User, error) {
	return store.users.Create(ctx, row)
}

func (store *PostgresRepository) Find(ctx context.Context, query Query) ([]*User, error) {
	return store.users.Find(ctx, repo.Query{
		Filters: queryFilters(query),
		Sort:    []repo.SortOption{{Field: "created_at", Direction: repo.Desc}},
		Offset:  &query.Offset,
		Limit:   &query.Limit,
	})
}

func (store *PostgresRepository) Count(ctx context.Context, query Query) (int64, error) {
	return store.users.Count(ctx, queryFilters(query)...)
}

func (store *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return store.users.GetByID(ctx, id)
}

func (store *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return store.users.FindOne(ctx, repo.Eq("email", email))
}

func (store *PostgresRepository) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*User, error) {
	var sets []repo.Set
	if input.Name != nil {
		sets = append(sets, repo.Set{Field: "name", Value: *input.Name})
	}
	if input.Email != nil {
		sets = append(sets, repo.Set{Field: "email", Value: *input.Email})
	}
	if input.LastModifiedBy != nil {
		sets = append(sets, repo.Set{Field: "last_modified_by", Value: *input.LastModifiedBy})
	}
	return store.users.Update(ctx, id, sets...)
}

func (store *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) (*User, error) {
	return store.users.Delete(ctx, id)
}

func (store *PostgresRepository) WithTx(tx pgx.Tx) Repository {
	return &PostgresRepository{users: store.users.WithTx(tx)}
}
