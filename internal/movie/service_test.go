// Copyright (c) 2026 Cinerate. All rights reserved.

package movie_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinerate/cinerate/internal/movie"
	"github.com/cinerate/cinerate/internal/platform/apperr"
	"github.com/cinerate/cinerate/internal/platform/ctxutil"
	"github.com/cinerate/cinerate/pkg/pointer"
	"github.com/cinerate/cinerate/pkg/uuidv7"
)

// # Test Doubles

// fakeTxRunner runs the unit of work without a real transaction.
type fakeTxRunner struct{}

func (fakeTxRunner) RunTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

// fakeRepository is an in-memory movie store keyed by ID.
//
// forceCreateConflict simulates a concurrent writer winning the race between
// the service's pre-check and the insert: the pre-check misses but the store
// constraint still fires.
type fakeRepository struct {
	rows                map[uuid.UUID]*movie.Movie
	forceCreateConflict bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{rows: make(map[uuid.UUID]*movie.Movie)}
}

func (f *fakeRepository) Create(ctx context.Context, row *movie.Row) (*movie.Movie, error) {
	if f.forceCreateConflict {
		return nil, apperr.Conflict("Resource already exists")
	}
	for _, existing := range f.rows {
		if existing.Title == row.Title {
			return nil, apperr.Conflict("Resource already exists")
		}
	}
	created := &movie.Movie{
		ID:             row.ID,
		Title:          row.Title,
		Description:    row.Description,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
		LastModifiedBy: row.LastModifiedBy,
	}
	f.rows[row.ID] = created
	return created, nil
}

func (f *fakeRepository) Find(ctx context.Context, query movie.Query) ([]*movie.Movie, error) {
	result := make([]*movie.Movie, 0, len(f.rows))
	for _, m := range f.rows {
		result = append(result, m)
	}
	return result, nil
}

func (f *fakeRepository) Count(ctx context.Context, query movie.Query) (int64, error) {
	return int64(len(f.rows)), nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*movie.Movie, error) {
	if m, ok := f.rows[id]; ok {
		return m, nil
	}
	return nil, apperr.NotFound("Movie")
}

func (f *fakeRepository) GetByTitle(ctx context.Context, title string) (*movie.Movie, error) {
	for _, m := range f.rows {
		if m.Title == title {
			return m, nil
		}
	}
	return nil, apperr.NotFound("Movie")
}

func (f *fakeRepository) Update(ctx context.Context, id uuid.UUID, input movie.UpdateInput) (*movie.Movie, error) {
	m, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("Movie")
	}
	if input.Title != nil {
		m.Title = *input.Title
	}
	if input.Description != nil {
		m.Description = input.Description
	}
	m.LastModifiedBy = input.LastModifiedBy
	m.UpdatedAt = time.Now()
	return m, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) (*movie.Movie, error) {
	m, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("Movie")
	}
	delete(f.rows, id)
	return m, nil
}

func (f *fakeRepository) WithTx(tx pgx.Tx) movie.Repository { return f }

// fakeCache records cache traffic in memory.
type fakeCache struct {
	entries     map[string]*movie.Movie
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*movie.Movie)}
}

func (f *fakeCache) Get(ctx context.Context, id string) (*movie.Movie, bool) {
	m, ok := f.entries[id]
	return m, ok
}

func (f *fakeCache) Set(ctx context.Context, value *movie.Movie) {
	f.entries[value.ID.String()] = value
}

func (f *fakeCache) Invalidate(ctx context.Context, id string) {
	delete(f.entries, id)
	f.invalidated = append(f.invalidated, id)
}

func newService(repo movie.Repository, cache movie.DetailCache) *movie.Service {
	return movie.NewService(repo, fakeTxRunner{}, cache, slog.Default())
}

// # Tests

/*
TestService_Create verifies creation, audit stamping from the caller
identity, and the duplicate-title conflict.
*/
func TestService_Create(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo, newFakeCache())

	ctx := ctxutil.WithIdentity(context.Background(), &ctxutil.Identity{UserID: "ops-1", Tenant: "acme"})

	created, err := service.Create(ctx, movie.CreateInput{
		Title:       "Inception",
		Description: pointer.To("A heist inside dreams."),
	})
	require.NoError(t, err)
	assert.Equal(t, "Inception", created.Title)
	require.NotNil(t, created.LastModifiedBy)
	assert.Equal(t, "ops-1", *created.LastModifiedBy)

	t.Run("duplicate_title", func(t *testing.T) {
		_, err := service.Create(ctx, movie.CreateInput{Title: "Inception"})
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, apperr.CodeConflict, ae.Code)
		assert.Equal(t, "Movie already exists with title Inception", ae.Message)
	})
}

/*
TestService_Create_ConstraintFallback verifies a concurrent insert that
slips past the pre-check still produces the identical conflict message.
*/
func TestService_Create_ConstraintFallback(t *testing.T) {
	repo := newFakeRepository()
	repo.forceCreateConflict = true
	service := newService(repo, newFakeCache())

	_, err := service.Create(context.Background(), movie.CreateInput{Title: "Inception"})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeConflict, ae.Code)
	assert.Equal(t, "Movie already exists with title Inception", ae.Message)
}

/*
TestService_Get verifies the cache read-through: a miss populates the cache,
a hit skips the store.
*/
func TestService_Get(t *testing.T) {
	repo := newFakeRepository()
	cache := newFakeCache()
	service := newService(repo, cache)

	ctx := context.Background()
	created, err := service.Create(ctx, movie.CreateInput{Title: "Heat"})
	require.NoError(t, err)

	// 1. Miss: loaded from the store and cached
	got, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	_, cached := cache.entries[created.ID.String()]
	assert.True(t, cached)

	// 2. Hit: served even after the store row disappears
	delete(repo.rows, created.ID)
	got, err = service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Heat", got.Title)

	t.Run("unknown_id", func(t *testing.T) {
		_, err := service.Get(ctx, uuidv7.New())
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})
}

/*
TestService_Update verifies rename collision detection and cache
invalidation on success.
*/
func TestService_Update(t *testing.T) {
	repo := newFakeRepository()
	cache := newFakeCache()
	service := newService(repo, cache)

	ctx := context.Background()
	first, err := service.Create(ctx, movie.CreateInput{Title: "Heat"})
	require.NoError(t, err)
	second, err := service.Create(ctx, movie.CreateInput{Title: "Ronin"})
	require.NoError(t, err)

	t.Run("rename_collision", func(t *testing.T) {
		_, err := service.Update(ctx, second.ID, movie.UpdateInput{Title: pointer.To("Heat")})
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, apperr.CodeConflict, ae.Code)
		assert.Equal(t, "Movie already exists with title Heat", ae.Message)
	})

	t.Run("rename_to_own_title_is_allowed", func(t *testing.T) {
		updated, err := service.Update(ctx, first.ID, movie.UpdateInput{
			Title:       pointer.To("Heat"),
			Description: pointer.To("LA crime saga."),
		})
		require.NoError(t, err)
		assert.Equal(t, "Heat", updated.Title)
	})

	t.Run("invalidates_cache", func(t *testing.T) {
		_, err := service.Update(ctx, first.ID, movie.UpdateInput{Description: pointer.To("Updated.")})
		require.NoError(t, err)
		assert.Contains(t, cache.invalidated, first.ID.String())
	})
}

/*
TestService_Delete verifies deletion returns the final representation and
drops the cache entry.
*/
func TestService_Delete(t *testing.T) {
	repo := newFakeRepository()
	cache := newFakeCache()
	service := newService(repo, cache)

	ctx := context.Background()
	created, err := service.Create(ctx, movie.CreateInput{Title: "Heat"})
	require.NoError(t, err)

	deleted, err := service.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Heat", deleted.Title)
	assert.Contains(t, cache.invalidated, created.ID.String())

	_, err = service.Get(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}
