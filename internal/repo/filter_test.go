// Copyright (c) 2026 Cinerate. All rights reserved.

package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinerate/cinerate/internal/platform/apperr"
	"github.com/cinerate/cinerate/internal/platform/database/schema"
)

/*
TestBuildWhere_AlwaysExcludesDeleted verifies that every rendered WHERE
clause hides soft-deleted rows, even with no filters at all.
*/
func TestBuildWhere_AlwaysExcludesDeleted(t *testing.T) {
	d := schema.Movies.Descriptor()

	where, args, err := buildWhere(d, nil)
	require.NoError(t, err)
	assert.Equal(t, "deletedat IS NULL", where)
	assert.Empty(t, args)
}

/*
TestBuildWhere_Eq verifies equality filters resolve API field names to
physical columns.
*/
func TestBuildWhere_Eq(t *testing.T) {
	d := schema.Movies.Descriptor()

	where, args, err := buildWhere(d, []Filter{Eq("title", "Inception")})
	require.NoError(t, err)
	assert.Equal(t, "deletedat IS NULL AND (title = ?)", where)
	assert.Equal(t, []any{"Inception"}, args)
}

/*
TestBuildWhere_MultipleFilters verifies filters are AND-joined in order.
*/
func TestBuildWhere_MultipleFilters(t *testing.T) {
	d := schema.Ratings.Descriptor()

	where, args, err := buildWhere(d, []Filter{
		Eq("user_id", "u-1"),
		Op("rating", "gte", 5),
	})
	require.NoError(t, err)
	assert.Equal(t, "deletedat IS NULL AND (userid = ?) AND (rating >= ?)", where)
	assert.Equal(t, []any{"u-1", 5}, args)
}

/*
TestBuildWhere_UnknownField verifies that an unresolvable field name fails
as a validation error rather than producing broken SQL.
*/
func TestBuildWhere_UnknownField(t *testing.T) {
	d := schema.Movies.Descriptor()

	_, _, err := buildWhere(d, []Filter{Eq("genre", "sci-fi")})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
}

/*
TestOp_Operators exercises the full named-operator table.
*/
func TestOp_Operators(t *testing.T) {
	d := schema.Movies.Descriptor()

	tests := []struct {
		name     string
		filter   Filter
		wantSQL  string
		wantArgs int
	}{
		{"ne", Op("title", "ne", "X"), "deletedat IS NULL AND (title <> ?)", 1},
		{"gt", Op("created_at", "gt", "2026-01-01"), "deletedat IS NULL AND (createdat > ?)", 1},
		{"gte", Op("created_at", "gte", "2026-01-01"), "deletedat IS NULL AND (createdat >= ?)", 1},
		{"lt", Op("created_at", "lt", "2026-01-01"), "deletedat IS NULL AND (createdat < ?)", 1},
		{"lte", Op("created_at", "lte", "2026-01-01"), "deletedat IS NULL AND (createdat <= ?)", 1},
		{"like", Op("title", "like", "%cep%"), "deletedat IS NULL AND (title LIKE ?)", 1},
		{"ilike", Op("title", "ilike", "%cep%"), "deletedat IS NULL AND (title ILIKE ?)", 1},
		{"in", Op("title", "in", "A", "B"), "deletedat IS NULL AND (title = ANY(?))", 1},
		{"notin", Op("title", "notin", "A", "B"), "deletedat IS NULL AND (title <> ALL(?))", 1},
		{"isnull", Op("description", "isnull"), "deletedat IS NULL AND (description IS NULL)", 0},
		{"notnull", Op("description", "notnull"), "deletedat IS NULL AND (description IS NOT NULL)", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args, err := buildWhere(d, []Filter{tt.filter})
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, where)
			assert.Len(t, args, tt.wantArgs)
		})
	}
}

/*
TestOp_Validation verifies unknown operators and arity mismatches fail as
validation errors.
*/
func TestOp_Validation(t *testing.T) {
	d := schema.Movies.Descriptor()

	tests := []struct {
		name   string
		filter Filter
	}{
		{"unknown_operator", Op("title", "between", 1, 2)},
		{"too_many_args", Op("title", "ne", "a", "b")},
		{"missing_arg", Op("title", "gt")},
		{"in_requires_args", Op("title", "in")},
		{"isnull_rejects_args", Op("description", "isnull", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := buildWhere(d, []Filter{tt.filter})
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
		})
	}
}

/*
TestWhere_Predicate verifies the opaque predicate variant passes its SQL and
arguments through untouched.
*/
func TestWhere_Predicate(t *testing.T) {
	d := schema.Movies.Descriptor()

	f := Where(func(d schema.Descriptor) (string, []any, error) {
		return d.CreatedAt + " > ? OR " + d.UpdatedAt + " > ?", []any{"a", "b"}, nil
	})

	where, args, err := buildWhere(d, []Filter{f})
	require.NoError(t, err)
	assert.Equal(t, "deletedat IS NULL AND (createdat > ? OR updatedat > ?)", where)
	assert.Equal(t, []any{"a", "b"}, args)
}

/*
TestBuildOrder verifies sort rendering, priority order, and direction checks.
*/
func TestBuildOrder(t *testing.T) {
	d := schema.Movies.Descriptor()

	t.Run("empty_means_store_default", func(t *testing.T) {
		order, err := buildOrder(d, nil)
		require.NoError(t, err)
		assert.Empty(t, order)
	})

	t.Run("multi_key_priority", func(t *testing.T) {
		order, err := buildOrder(d, []SortOption{
			{Field: "created_at", Direction: Desc},
			{Field: "title", Direction: Asc},
		})
		require.NoError(t, err)
		assert.Equal(t, " ORDER BY createdat DESC, title ASC", order)
	})

	t.Run("unknown_field", func(t *testing.T) {
		_, err := buildOrder(d, []SortOption{{Field: "genre", Direction: Asc}})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})

	t.Run("unknown_direction", func(t *testing.T) {
		_, err := buildOrder(d, []SortOption{{Field: "title", Direction: "sideways"}})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
	})
}

/*
TestRebind verifies '?' placeholders are rebased to positional '$n' form.
*/
func TestRebind(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no_placeholders", "SELECT 1", "SELECT 1"},
		{"single", "id = ?", "id = $1"},
		{"many", "a = ? AND b = ? AND c = ?", "a = $1 AND b = $2 AND c = $3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rebind(tt.in))
		})
	}
}
