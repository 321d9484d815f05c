// Copyright (c) 2026 Cinerate. All rights reserved.

/*
Package repo implements the generic repository underpinning every Cinerate
entity: a single component parameterized over an entity row type and its
API-facing representation.

Architecture:

  - Entity rows (E) mirror physical columns and never leave this layer.
  - Representations (R) are what every operation returns, produced by an
    explicit per-entity converter — no reflection, no generic serializers.
  - Filters, sort keys, and update sets reference API field names, resolved
    through a [schema.Descriptor]; an unknown name is a local validation
    failure, never a silently broken query.

Storage access goes through the narrow [DB] interface, satisfied by both
*pgxpool.Pool (auto-commit) and pgx.Tx (caller-scoped unit of work via
[Repository.WithTx]), so services decide transaction boundaries.
*/
package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cinerate/cinerate/internal/platform/apperr"
	"github.com/cinerate/cinerate/internal/platform/database/schema"
	"github.com/cinerate/cinerate/internal/platform/dberr"
	"github.com/cinerate/cinerate/pkg/slice"
)

// DB is the slice of pgx used by repositories. Both *pgxpool.Pool and pgx.Tx
// satisfy it, which is how one repository value serves auto-commit calls and
// transactional units of work alike.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Query bundles the read options of [Repository.Find].
//
// Nil Offset/Limit mean unrestricted. Sort keys apply in order, first key
// highest priority; an empty sort yields store-default order.
type Query struct {
	Filters []Filter
	Sort    []SortOption
	Offset  *int
	Limit   *int
}

// Repository is the generic CRUD repository for one table.
//
// E is the entity row type (db-tagged struct matching the table's columns),
// R the API representation returned by every operation.
type Repository[E any, R any] struct {
	db   DB
	desc schema.Descriptor

	// insert returns the writable column names and their values for a new
	// row. Store-assigned columns (timestamps) are omitted and read back
	// via RETURNING.
	insert func(row *E) ([]string, []any)

	// convert maps a scanned row to its API representation.
	convert func(row *E) *R
}

// New constructs a repository for one entity binding.
func New[E any, R any](
	db DB,
	desc schema.Descriptor,
	insert func(row *E) ([]string, []any),
	convert func(row *E) *R,
) *Repository[E, R] {
	return &Repository[E, R]{
		db:      db,
		desc:    desc,
		insert:  insert,
		convert: convert,
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
// Operations on the copy are staged in the caller's unit of work and become
// durable only when the caller commits.
func (r *Repository[E, R]) WithTx(tx pgx.Tx) *Repository[E, R] {
	clone := *r
	clone.db = tx
	return &clone
}

// # Create

// Create inserts the row and returns its representation including all
// store-assigned fields (timestamps read back via RETURNING).
//
// Create performs no uniqueness pre-checks; those belong to the service
// layer. A store-level unique violation surfaces as a Conflict AppError.
func (r *Repository[E, R]) Create(ctx context.Context, row *E) (*R, error) {
	cols, vals := r.insert(row)

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = "?"
	}

	sql := "INSERT INTO " + r.desc.Table +
		" (" + strings.Join(cols, ", ") + ")" +
		" VALUES (" + strings.Join(placeholders, ", ") + ")" +
		" RETURNING " + r.desc.SelectList()

	rows, err := r.db.Query(ctx, rebind(sql), vals...)
	if err != nil {
		return nil, dberr.Wrap(err, "create_"+r.desc.Table)
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[E])
	if err != nil {
		return nil, dberr.Wrap(err, "create_"+r.desc.Table)
	}

	return r.convert(created), nil
}

// # Reads

// Count returns the number of live rows matching all filters.
func (r *Repository[E, R]) Count(ctx context.Context, filters ...Filter) (int64, error) {
	where, args, err := buildWhere(r.desc, filters)
	if err != nil {
		return 0, err
	}

	sql := "SELECT count(*) FROM " + r.desc.Table + " WHERE " + where

	var total int64
	if err := r.db.QueryRow(ctx, rebind(sql), args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count_"+r.desc.Table)
	}

	return total, nil
}

// Find returns all matching representations, paged and sorted.
// No match yields an empty slice, never an error.
func (r *Repository[E, R]) Find(ctx context.Context, q Query) ([]*R, error) {
	where, args, err := buildWhere(r.desc, q.Filters)
	if err != nil {
		return nil, err
	}

	order, err := buildOrder(r.desc, q.Sort)
	if err != nil {
		return nil, err
	}

	sql := "SELECT " + r.desc.SelectList() + " FROM " + r.desc.Table +
		" WHERE " + where + order

	if q.Limit != nil {
		sql += " LIMIT ?"
		args = append(args, *q.Limit)
	}
	if q.Offset != nil {
		sql += " OFFSET ?"
		args = append(args, *q.Offset)
	}

	rows, err := r.db.Query(ctx, rebind(sql), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "find_"+r.desc.Table)
	}

	entities, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[E])
	if err != nil {
		return nil, dberr.Wrap(err, "find_"+r.desc.Table)
	}

	return slice.Map(entities, r.convert), nil
}

// FindOne returns the single representation matching all filters.
//
// Zero matches yield a NotFound AppError. More than one match is a contract
// breach (filters too weak) and fails loudly with a MultipleResults AppError
// instead of silently picking a row.
func (r *Repository[E, R]) FindOne(ctx context.Context, filters ...Filter) (*R, error) {
	where, args, err := buildWhere(r.desc, filters)
	if err != nil {
		return nil, err
	}

	// LIMIT 2 is enough to prove the single-result contract was violated
	// without dragging the full match set over the wire.
	sql := "SELECT " + r.desc.SelectList() + " FROM " + r.desc.Table +
		" WHERE " + where + " LIMIT 2"

	rows, err := r.db.Query(ctx, rebind(sql), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "find_one_"+r.desc.Table)
	}

	entity, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[E])
	if err != nil {
		return nil, dberr.Wrap(err, "find_one_"+r.desc.Table)
	}

	return r.convert(entity), nil
}

// GetByID is the id-keyed specialization of [Repository.FindOne].
func (r *Repository[E, R]) GetByID(ctx context.Context, id uuid.UUID) (*R, error) {
	return r.FindOne(ctx, Eq("id", id))
}

// # Update

// Update assigns the named fields on the row with the given id and returns
// the updated representation.
//
// The updated-at timestamp is refreshed from the store clock on every call,
// even when sets is empty, so it always reflects the latest modification.
// Identity and audit timestamp fields are read-only.
func (r *Repository[E, R]) Update(ctx context.Context, id uuid.UUID, sets ...Set) (*R, error) {
	assignments := make([]string, 0, len(sets)+1)
	args := make([]any, 0, len(sets)+1)

	for _, s := range sets {
		col, ok := r.desc.Column(s.Field)
		if !ok {
			return nil, errUnknownField(s.Field)
		}
		if col == r.desc.ID || col == r.desc.CreatedAt || col == r.desc.UpdatedAt {
			return nil, apperr.ValidationError("Invalid update", apperr.FieldError{
				Field:   s.Field,
				Message: "Field is read-only",
			})
		}
		assignments = append(assignments, col+" = ?")
		args = append(args, s.Value)
	}

	assignments = append(assignments, r.desc.UpdatedAt+" = NOW()")
	args = append(args, id)

	sql := "UPDATE " + r.desc.Table +
		" SET " + strings.Join(assignments, ", ") +
		" WHERE " + r.desc.ID + " = ? AND " + r.desc.DeletedAt + " IS NULL" +
		" RETURNING " + r.desc.SelectList()

	rows, err := r.db.Query(ctx, rebind(sql), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "update_"+r.desc.Table)
	}

	updated, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[E])
	if err != nil {
		return nil, dberr.Wrap(err, "update_"+r.desc.Table)
	}

	return r.convert(updated), nil
}

// # Delete

// Delete soft-deletes the row with the given id and returns the final
// representation of what was deleted.
//
// Deleting an id that does not exist (or was already deleted) yields a
// NotFound AppError, never a silent no-op.
func (r *Repository[E, R]) Delete(ctx context.Context, id uuid.UUID) (*R, error) {
	sql := "UPDATE " + r.desc.Table +
		" SET " + r.desc.DeletedAt + " = NOW()" +
		" WHERE " + r.desc.ID + " = ? AND " + r.desc.DeletedAt + " IS NULL" +
		" RETURNING " + r.desc.SelectList()

	rows, err := r.db.Query(ctx, rebind(sql), id)
	if err != nil {
		return nil, dberr.Wrap(err, "delete_"+r.desc.Table)
	}

	deleted, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[E])
	if err != nil {
		return nil, dberr.Wrap(err, "delete_"+r.desc.Table)
	}

	return r.convert(deleted), nil
}
