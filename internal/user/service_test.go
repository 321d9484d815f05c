// Copyright (c) 2026 Cinerate. All rights reserved.

package user_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinerate/cinerate/internal/platform/apperr"
	"github.com/cinerate/cinerate/internal/platform/ctxutil"
	"github.com/cinerate/cinerate/internal/user"
	"github.com/cinerate/cinerate/pkg/pointer"
)

// # Test Doubles

type fakeTxRunner struct{}

func (fakeTxRunner) RunTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

// fakeRepository is an in-memory user store keyed by ID.
type fakeRepository struct {
	rows map[uuid.UUID]*user.User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{rows: make(map[uuid.UUID]*user.User)}
}

func (f *fakeRepository) Create(ctx context.Context, row *user.Row) (*user.User, error) {
	for _, existing := range f.rows {
		if existing.Email == row.Email {
			return nil, apperr.Conflict("Resource already exists")
		}
	}
	created := &user.User{
		ID:             row.ID,
		Name:           row.Name,
		Email:          row.Email,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
		LastModifiedBy: row.LastModifiedBy,
	}
	f.rows[row.ID] = created
	return created, nil
}

func (f *fakeRepository) Find(ctx context.Context, query user.Query) ([]*user.User, error) {
	result := make([]*user.User, 0, len(f.rows))
	for _, u := range f.rows {
		result = append(result, u)
	}
	return result, nil
}

func (f *fakeRepository) Count(ctx context.Context, query user.Query) (int64, error) {
	return int64(len(f.rows)), nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := f.rows[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range f.rows {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeRepository) Update(ctx context.Context, id uuid.UUID, input user.UpdateInput) (*user.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	if input.Name != nil {
		u.Name = *input.Name
	}
	if input.Email != nil {
		u.Email = *input.Email
	}
	u.LastModifiedBy = input.LastModifiedBy
	u.UpdatedAt = time.Now()
	return u, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	delete(f.rows, id)
	return u, nil
}

func (f *fakeRepository) WithTx(tx pgx.Tx) user.Repository { return f }

func newService(repo user.Repository) *user.Service {
	return user.NewService(repo, fakeTxRunner{}, slog.Default())
}

// # Tests

/*
TestService_Create verifies email normalization, audit stamping, and the
duplicate-email conflict.
*/
func TestService_Create(t *testing.T) {
	service := newService(newFakeRepository())

	ctx := ctxutil.WithIdentity(context.Background(), &ctxutil.Identity{UserID: "ops-1", Tenant: "acme"})

	created, err := service.Create(ctx, user.CreateInput{
		Name:  "Ada Lovelace",
		Email: "  Ada@Example.COM ",
	})
	require.NoError(t, err)

	// Email normalized before persistence
	assert.Equal(t, "ada@example.com", created.Email)
	require.NotNil(t, created.LastModifiedBy)
	assert.Equal(t, "ops-1", *created.LastModifiedBy)

	t.Run("duplicate_email_case_insensitive", func(t *testing.T) {
		_, err := service.Create(ctx, user.CreateInput{Name: "Imposter", Email: "ADA@example.com"})
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, apperr.CodeConflict, ae.Code)
		assert.Equal(t, "User already exists with email ada@example.com", ae.Message)
	})
}

/*
TestService_Update verifies email collision detection on change and that a
user may keep their own address.
*/
func TestService_Update(t *testing.T) {
	service := newService(newFakeRepository())
	ctx := context.Background()

	ada, err := service.Create(ctx, user.CreateInput{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	alan, err := service.Create(ctx, user.CreateInput{Name: "Alan", Email: "alan@example.com"})
	require.NoError(t, err)

	t.Run("email_collision", func(t *testing.T) {
		_, err := service.Update(ctx, alan.ID, user.UpdateInput{Email: pointer.To("Ada@example.com")})
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, apperr.CodeConflict, ae.Code)
		assert.Equal(t, "User already exists with email ada@example.com", ae.Message)
	})

	t.Run("keep_own_email", func(t *testing.T) {
		updated, err := service.Update(ctx, ada.ID, user.UpdateInput{
			Name:  pointer.To("Ada L."),
			Email: pointer.To("ADA@example.com"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Ada L.", updated.Name)
		assert.Equal(t, "ada@example.com", updated.Email)
	})

	t.Run("unknown_user", func(t *testing.T) {
		_, err := service.Update(ctx, uuid.New(), user.UpdateInput{Name: pointer.To("X")})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})
}

/*
TestService_Delete verifies deletion returns the final representation.
*/
func TestService_Delete(t *testing.T) {
	service := newService(newFakeRepository())
	ctx := context.Background()

	created, err := service.Create(ctx, user.CreateInput{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	deleted, err := service.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", deleted.Email)

	_, err = service.Get(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}
