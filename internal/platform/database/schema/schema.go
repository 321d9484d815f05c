// Copyright (c) 2026 Cinerate. All rights reserved.

// Package schema declares the shape of every persisted table.
//
// # Architecture
//
// Each table gets a struct of column names plus a [Descriptor] consumed by
// the generic repository. Keeping column names in one place lets query
// builders reference columns by API field name, and makes an unknown filter
// field a detectable error instead of a silently broken query.
package schema

import "strings"

// Descriptor describes one table to the generic repository.
//
// Fields maps API-level field names (the names callers use in filters, sort
// options, and update sets) onto physical column names. Columns fixes the
// SELECT / RETURNING order so row scanning is deterministic.
type Descriptor struct {
	Table     string
	ID        string
	CreatedAt string
	UpdatedAt string
	DeletedAt string

	Columns []string
	Fields  map[string]string
}

// Column resolves an API field name to its physical column.
// The second return reports whether the field exists on this table.
func (d Descriptor) Column(field string) (string, bool) {
	col, ok := d.Fields[field]
	return col, ok
}

// SelectList returns the comma-joined column list for SELECT and RETURNING
// clauses, in the fixed [Descriptor.Columns] order.
func (d Descriptor) SelectList() string {
	return strings.Join(d.Columns, ", ")
}
