// Copyright (c) 2026 Cinerate. All rights reserved.

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxRunner scopes a function to one transactional unit of work. It is the
// seam that lets service tests substitute a fake without a database.
type TxRunner interface {
	RunTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// Runner is the production [TxRunner] backed by the connection pool.
//
// Each call acquires a connection, begins a transaction, and commits it when
// fn returns nil. Any error (or panic) rolls the transaction back before it
// propagates, so partial writes never become visible.
type Runner struct {
	pool *pgxpool.Pool
}

// NewRunner constructs a [Runner] over the given pool.
func NewRunner(pool *pgxpool.Pool) *Runner {
	return &Runner{pool: pool}
}

// RunTx implements [TxRunner] via pgx.BeginFunc.
func (r *Runner) RunTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, r.pool, fn)
}
