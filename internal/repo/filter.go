// Copyright (c) 2026 Cinerate. All rights reserved.

package repo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cinerate/cinerate/internal/platform/apperr"
	"github.com/cinerate/cinerate/internal/platform/database/schema"
)

// Filter is a single condition narrowing a query. A filter list is always
// combined with logical AND; OR and more complex trees are expressed through
// the [Where] predicate variant.
//
// The concrete variants are [Eq], [Op], and [Where] — a closed set, so the
// repository never has to sniff argument shapes at runtime.
type Filter interface {
	render(d schema.Descriptor) (cond, error)
}

// cond is a rendered SQL fragment using '?' placeholders, rebased to
// positional '$n' placeholders when the full statement is assembled.
type cond struct {
	sql  string
	args []any
}

// # Equality

// Eq matches rows where the named field equals value.
func Eq(field string, value any) Filter {
	return eqFilter{field: field, value: value}
}

type eqFilter struct {
	field string
	value any
}

func (f eqFilter) render(d schema.Descriptor) (cond, error) {
	col, ok := d.Column(f.field)
	if !ok {
		return cond{}, errUnknownField(f.field)
	}
	return cond{sql: col + " = ?", args: []any{f.value}}, nil
}

// # Named Operators

// Op invokes a named comparison or string-matching operator on a field.
//
// Supported operators: ne, gt, gte, lt, lte, like, ilike, in, notin,
// isnull, notnull. An unknown operator or a wrong argument count is a
// validation error, never a silently ignored condition.
func Op(field, operator string, args ...any) Filter {
	return opFilter{field: field, operator: operator, args: args}
}

type opFilter struct {
	field    string
	operator string
	args     []any
}

// operatorSpec renders one named operator against a resolved column.
type operatorSpec struct {
	arity  int // -1 means variadic (at least one)
	render func(col string, args []any) cond
}

var operators = map[string]operatorSpec{
	"ne":  comparison("<>"),
	"gt":  comparison(">"),
	"gte": comparison(">="),
	"lt":  comparison("<"),
	"lte": comparison("<="),
	"like": {arity: 1, render: func(col string, args []any) cond {
		return cond{sql: col + " LIKE ?", args: args}
	}},
	"ilike": {arity: 1, render: func(col string, args []any) cond {
		return cond{sql: col + " ILIKE ?", args: args}
	}},
	"in": {arity: -1, render: func(col string, args []any) cond {
		return cond{sql: col + " = ANY(?)", args: []any{args}}
	}},
	"notin": {arity: -1, render: func(col string, args []any) cond {
		return cond{sql: col + " <> ALL(?)", args: []any{args}}
	}},
	"isnull": {arity: 0, render: func(col string, _ []any) cond {
		return cond{sql: col + " IS NULL"}
	}},
	"notnull": {arity: 0, render: func(col string, _ []any) cond {
		return cond{sql: col + " IS NOT NULL"}
	}},
}

func comparison(op string) operatorSpec {
	return operatorSpec{arity: 1, render: func(col string, args []any) cond {
		return cond{sql: col + " " + op + " ?", args: args}
	}}
}

func (f opFilter) render(d schema.Descriptor) (cond, error) {
	col, ok := d.Column(f.field)
	if !ok {
		return cond{}, errUnknownField(f.field)
	}

	spec, ok := operators[f.operator]
	if !ok {
		return cond{}, apperr.ValidationError("Invalid filter", apperr.FieldError{
			Field:   f.field,
			Message: fmt.Sprintf("Unknown operator %q", f.operator),
		})
	}

	switch {
	case spec.arity == -1 && len(f.args) == 0:
		return cond{}, apperr.ValidationError("Invalid filter", apperr.FieldError{
			Field:   f.field,
			Message: fmt.Sprintf("Operator %q requires at least one argument", f.operator),
		})
	case spec.arity >= 0 && len(f.args) != spec.arity:
		return cond{}, apperr.ValidationError("Invalid filter", apperr.FieldError{
			Field:   f.field,
			Message: fmt.Sprintf("Operator %q takes %d argument(s), got %d", f.operator, spec.arity, len(f.args)),
		})
	}

	return spec.render(col, f.args), nil
}

// # Predicates

// Where wraps an opaque predicate building an arbitrary SQL condition.
//
// The build function receives the table descriptor for column resolution and
// returns a fragment using '?' placeholders plus its bind arguments:
//
//	repo.Where(func(d schema.Descriptor) (string, []any, error) {
//		return "(title ILIKE ? OR description ILIKE ?)", []any{q, q}, nil
//	})
func Where(build func(d schema.Descriptor) (string, []any, error)) Filter {
	return whereFilter{build: build}
}

type whereFilter struct {
	build func(d schema.Descriptor) (string, []any, error)
}

func (f whereFilter) render(d schema.Descriptor) (cond, error) {
	sql, args, err := f.build(d)
	if err != nil {
		return cond{}, err
	}
	return cond{sql: sql, args: args}, nil
}

// # Sorting

// SortDirection is the order of one sort key.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// SortOption is one (field, direction) sort key. Keys apply in list order,
// first key highest priority.
type SortOption struct {
	Field     string
	Direction SortDirection
}

// # Field Updates

// Set names one field to assign during [Repository.Update]. Identity and
// audit timestamp fields are read-only and rejected.
type Set struct {
	Field string
	Value any
}

// # Assembly

func errUnknownField(field string) error {
	return apperr.ValidationError("Invalid filter", apperr.FieldError{
		Field:   field,
		Message: "Unknown field",
	})
}

// buildWhere renders the filter list into one AND-joined WHERE fragment with
// '?' placeholders. Soft-deleted rows are always excluded.
func buildWhere(d schema.Descriptor, filters []Filter) (string, []any, error) {
	clauses := []string{d.DeletedAt + " IS NULL"}
	var args []any

	for _, f := range filters {
		c, err := f.render(d)
		if err != nil {
			return "", nil, err
		}
		clauses = append(clauses, "("+c.sql+")")
		args = append(args, c.args...)
	}

	return strings.Join(clauses, " AND "), args, nil
}

// buildOrder renders the sort options into an ORDER BY fragment.
// An empty option list yields store-default order (empty fragment).
func buildOrder(d schema.Descriptor, sort []SortOption) (string, error) {
	if len(sort) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(sort))
	for _, s := range sort {
		col, ok := d.Column(s.Field)
		if !ok {
			return "", errUnknownField(s.Field)
		}
		switch s.Direction {
		case Asc:
			keys = append(keys, col+" ASC")
		case Desc:
			keys = append(keys, col+" DESC")
		default:
			return "", apperr.ValidationError("Invalid sort", apperr.FieldError{
				Field:   s.Field,
				Message: fmt.Sprintf("Unknown sort direction %q", s.Direction),
			})
		}
	}

	return " ORDER BY " + strings.Join(keys, ", "), nil
}

// rebind replaces each '?' placeholder with its positional '$n' form.
// Fragments authored by filters never contain literal question marks.
func rebind(sql string) string {
	var b strings.Builder
	b.Grow(len(sql) + 8)

	n := 0
	for i := 0; i < len(sql); i++ {
		if sql[i] != '?' {
			b.WriteByte(sql[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}

	return b.String()
}
