// Copyright (c) 2026 Cinerate. All rights reserved.

package rating_test

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
	"github.com/cinerate/cinerate/internal/rating"
	"github.com/cinerate/cinerate/internal/user"
	"github.com/cinerate/cinerate/pkg/uuidv7"
)

// # Test Doubles

type fakeTxRunner struct{}

func (fakeTxRunner) RunTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

// fakeRatings is an in-memory rating store keyed by ID.
type fakeRatings struct {
	rows map[uuid.UUID]*rating.Rating
}

func newFakeRatings() *fakeRatings {
	return &fakeRatings{rows: make(map[uuid.UUID]*rating.Rating)}
}

func (f *fakeRatings) Create(ctx context.Context, row *rating.Row) (*rating.Rating, error) {
	for _, existing := range f.rows {
		if existing.UserID == row.UserID && existing.MovieID == row.MovieID {
			return nil, apperr.Conflict("Resource already exists")
		}
	}
	created := &rating.Rating{
		ID:             row.ID,
		UserID:         row.UserID,
		MovieID:        row.MovieID,
		Rating:         row.Rating,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
		LastModifiedBy: row.LastModifiedBy,
	}
	f.rows[row.ID] = created
	return created, nil
}

func (f *fakeRatings) GetByID(ctx context.Context, id uuid.UUID) (*rating.Rating, error) {
	if r, ok := f.rows[id]; ok {
		return r, nil
	}
	return nil, apperr.NotFound("Rating")
}

func (f *fakeRatings) GetByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) (*rating.Rating, error) {
	for _, r := range f.rows {
		if r.UserID == userID && r.MovieID == movieID {
			return r, nil
		}
	}
	return nil, apperr.NotFound("Rating")
}

func (f *fakeRatings) ListByMovie(ctx context.Context, movieID uuid.UUID, offset, limit int) ([]*rating.Rating, error) {
	result := make([]*rating.Rating, 0)
	for _, r := range f.rows {
		if r.MovieID == movieID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeRatings) CountByMovie(ctx context.Context, movieID uuid.UUID) (int64, error) {
	var total int64
	for _, r := range f.rows {
		if r.MovieID == movieID {
			total++
		}
	}
	return total, nil
}

func (f *fakeRatings) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*rating.Rating, error) {
	result := make([]*rating.Rating, 0)
	for _, r := range f.rows {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeRatings) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	for _, r := range f.rows {
		if r.UserID == userID {
			total++
		}
	}
	return total, nil
}

func (f *fakeRatings) Update(ctx context.Context, id uuid.UUID, input rating.UpdateInput) (*rating.Rating, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("Rating")
	}
	if input.Rating != nil {
		r.Rating = *input.Rating
	}
	r.LastModifiedBy = input.LastModifiedBy
	r.UpdatedAt = time.Now()
	return r, nil
}

func (f *fakeRatings) Delete(ctx context.Context, id uuid.UUID) (*rating.Rating, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("Rating")
	}
	delete(f.rows, id)
	return r, nil
}

func (f *fakeRatings) WithTx(tx pgx.Tx) rating.Repository { return f }

// fakeUsers resolves user representations from a fixed set.
type fakeUsers struct {
	rows map[uuid.UUID]*user.User
}

func (f *fakeUsers) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := f.rows[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

// fakeMovies resolves movie representations from a fixed set.
type fakeMovies struct {
	rows map[uuid.UUID]*movie.Movie
}

func (f *fakeMovies) GetByID(ctx context.Context, id uuid.UUID) (*movie.Movie, error) {
	if m, ok := f.rows[id]; ok {
		return m, nil
	}
	return nil, apperr.NotFound("Movie")
}

// testWorld bundles a service with one known user and one known movie.
type testWorld struct {
	service *rating.Service
	ratings *fakeRatings
	ada     *user.User
	heat    *movie.Movie
}

func newTestWorld() *testWorld {
	ada := &user.User{ID: uuidv7.New(), Name: "Ada", Email: "ada@example.com"}
	heat := &movie.Movie{ID: uuidv7.New(), Title: "Heat"}

	ratings := newFakeRatings()
	service := rating.NewService(
		ratings,
		&fakeUsers{rows: map[uuid.UUID]*user.User{ada.ID: ada}},
		&fakeMovies{rows: map[uuid.UUID]*movie.Movie{heat.ID: heat}},
		fakeTxRunner{},
		slog.Default(),
	)

	return &testWorld{service: service, ratings: ratings, ada: ada, heat: heat}
}

// # Tests

/*
TestService_Create verifies referential checks and the one-rating-per-pair
conflict.
*/
func TestService_Create(t *testing.T) {
	world := newTestWorld()
	ctx := context.Background()

	created, err := world.service.Create(ctx, rating.CreateInput{
		UserID:  world.ada.ID,
		MovieID: world.heat.ID,
		Rating:  9,
	})
	require.NoError(t, err)
	assert.Equal(t, world.ada.ID, created.UserID)
	assert.Equal(t, world.heat.ID, created.MovieID)
	assert.EqualValues(t, 9, created.Rating)

	t.Run("duplicate_pair", func(t *testing.T) {
		_, err := world.service.Create(ctx, rating.CreateInput{
			UserID:  world.ada.ID,
			MovieID: world.heat.ID,
			Rating:  5,
		})
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, apperr.CodeConflict, ae.Code)
		assert.Equal(t, "Rating already exists for this user/movie", ae.Message)
	})

	t.Run("unknown_user", func(t *testing.T) {
		_, err := world.service.Create(ctx, rating.CreateInput{
			UserID:  uuidv7.New(),
			MovieID: world.heat.ID,
			Rating:  7,
		})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})

	t.Run("unknown_movie", func(t *testing.T) {
		_, err := world.service.Create(ctx, rating.CreateInput{
			UserID:  world.ada.ID,
			MovieID: uuidv7.New(),
			Rating:  7,
		})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})
}

/*
TestService_Get verifies the one-level detail expansion.
*/
func TestService_Get(t *testing.T) {
	world := newTestWorld()
	ctx := context.Background()

	created, err := world.service.Create(ctx, rating.CreateInput{
		UserID:  world.ada.ID,
		MovieID: world.heat.ID,
		Rating:  8,
	})
	require.NoError(t, err)

	detail, err := world.service.Get(ctx, created.ID)
	require.NoError(t, err)

	// The expansion carries flat user and movie representations
	require.NotNil(t, detail.User)
	require.NotNil(t, detail.Movie)
	assert.Equal(t, "Ada", detail.User.Name)
	assert.Equal(t, "Heat", detail.Movie.Title)
	assert.EqualValues(t, 8, detail.Rating.Rating)
}

/*
TestService_ListByMovie verifies per-movie listing with expanded raters.
*/
func TestService_ListByMovie(t *testing.T) {
	world := newTestWorld()
	ctx := context.Background()

	_, err := world.service.Create(ctx, rating.CreateInput{
		UserID:  world.ada.ID,
		MovieID: world.heat.ID,
		Rating:  8,
	})
	require.NoError(t, err)

	details, total, err := world.service.ListByMovie(ctx, world.heat.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, details, 1)
	assert.Equal(t, "Ada", details[0].User.Name)
	assert.Equal(t, "Heat", details[0].Movie.Title)

	t.Run("unknown_movie", func(t *testing.T) {
		_, _, err := world.service.ListByMovie(ctx, uuidv7.New(), 0, 10)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})
}

/*
TestService_UpdateAndDelete verifies score changes and deletion semantics.
*/
func TestService_UpdateAndDelete(t *testing.T) {
	world := newTestWorld()
	ctx := context.Background()

	created, err := world.service.Create(ctx, rating.CreateInput{
		UserID:  world.ada.ID,
		MovieID: world.heat.ID,
		Rating:  6,
	})
	require.NoError(t, err)

	updated, err := world.service.Update(ctx, created.ID, 9.5)
	require.NoError(t, err)
	assert.EqualValues(t, 9.5, updated.Rating)

	deleted, err := world.service.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = world.service.Get(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}
