// Copyright (c) 2026 Cinerate. All rights reserved.

package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cinerate/cinerate/internal/platform/apperr"
	"github.com/cinerate/cinerate/internal/platform/ctxutil"
	"github.com/cinerate/cinerate/internal/platform/dberr"
	"github.com/cinerate/cinerate/internal/platform/postgres"
	"github.com/cinerate/cinerate/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business logic for registered users.
//
// It normalizes emails, enforces email uniqueness, and stamps the audit
// trail with the caller identity.
type Service struct {
	userRepository Repository
	txRunner       postgres.TxRunner
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(userRepo Repository, txRunner postgres.TxRunner, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		txRunner:       txRunner,
		logger:         logger,
	}
}

// conflictMessage is the single wording for duplicate emails, shared by the
// pre-check and the constraint fallback so callers cannot distinguish which
// path rejected them.
func conflictMessage(email string) string {
	return fmt.Sprintf("User already exists with email %s", email)
}

// normalizeEmail lowercases the address so uniqueness is case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// callerID returns the audit identity of the current caller, nil when the
// request carried no identity headers.
func callerID(ctx context.Context) *string {
	if identity := ctxutil.GetIdentity(ctx); identity != nil {
		return &identity.UserID
	}
	return nil
}

// CreateInput defines the caller-writable fields of a new user.
type CreateInput struct {
	Name  string
	Email string
}

/*
Create registers a new user.

Description: Normalizes the email, then runs a check-then-create sequence
inside one transaction. Concurrent writers that slip past the check are
caught by the store's partial unique index and mapped to the identical
conflict error.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *User: The created representation
  - error: apperr.Conflict on duplicate email, or storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*User, error) {

	email := normalizeEmail(input.Email)

	var created *User

	err := service.txRunner.RunTx(context, func(tx pgx.Tx) error {
		users := service.userRepository.WithTx(tx)

		// Business: reject duplicate emails before attempting the insert
		if _, err := users.GetByEmail(context, email); err == nil {
			return apperr.Conflict(conflictMessage(email))
		} else if !dberr.IsNotFound(err) {
			return fmt.Errorf("user_service_create_lookup_failed: %w", err)
		}

		row := &Row{
			ID:             uuidv7.New(),
			Name:           input.Name,
			Email:          email,
			LastModifiedBy: callerID(context),
		}

		var err error
		created, err = users.Create(context, row)
		return err
	})

	if err != nil {
		// Constraint fallback: a concurrent insert won the race
		if dberr.IsConflict(err) {
			return nil, apperr.Conflict(conflictMessage(email))
		}
		return nil, fmt.Errorf("user_service_create_failed: %w", err)
	}

	service.logger.Info("user_created",
		slog.String("user_id", created.ID.String()),
		slog.String("email", created.Email),
	)

	return created, nil
}

/*
List retrieves a page of users matching the query, newest first.

Parameters:
  - context: context.Context
  - query: Query (Optional name search plus pagination)

Returns:
  - []*User: The matching page (empty slice when nothing matches)
  - int64: Total matches ignoring pagination
  - error: Storage failures
*/
func (service *Service) List(context context.Context, query Query) ([]*User, int64, error) {

	users, err := service.userRepository.Find(context, query)
	if err != nil {
		return nil, 0, fmt.Errorf("user_service_list_failed: %w", err)
	}

	total, err := service.userRepository.Count(context, query)
	if err != nil {
		return nil, 0, fmt.Errorf("user_service_count_failed: %w", err)
	}

	return users, total, nil
}

/*
Get retrieves a single user by ID.

Parameters:
  - context: context.Context
  - id: uuid.UUID

Returns:
  - *User: The representation
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Get(context context.Context, id uuid.UUID) (*User, error) {
	found, err := service.userRepository.GetByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("user_service_get_failed: %w", err)
	}
	return found, nil
}

/*
Update applies a partial set of changes to an existing user.

Description: A changed email is re-normalized and its uniqueness re-checked
inside the same transaction as the write.

Parameters:
  - context: context.Context
  - id: uuid.UUID
  - input: UpdateInput

Returns:
  - *User: The updated representation
  - error: apperr.NotFound, apperr.Conflict, or storage failures
*/
func (service *Service) Update(context context.Context, id uuid.UUID, input UpdateInput) (*User, error) {

	if input.Email != nil {
		normalized := normalizeEmail(*input.Email)
		input.Email = &normalized
	}
	input.LastModifiedBy = callerID(context)

	var updated *User

	err := service.txRunner.RunTx(context, func(tx pgx.Tx) error {
		users := service.userRepository.WithTx(tx)

		// Business: a changed email must not collide with an existing account
		if input.Email != nil {
			existing, err := users.GetByEmail(context, *input.Email)
			if err == nil && existing.ID != id {
				return apperr.Conflict(conflictMessage(*input.Email))
			}
			if err != nil && !dberr.IsNotFound(err) {
				return fmt.Errorf("user_service_update_lookup_failed: %w", err)
			}
		}

		var err error
		updated, err = users.Update(context, id, input)
		return err
	})

	if err != nil {
		if input.Email != nil && dberr.IsConflict(err) {
			return nil, apperr.Conflict(conflictMessage(*input.Email))
		}
		return nil, fmt.Errorf("user_service_update_failed: %w", err)
	}

	service.logger.Info("user_updated", slog.String("user_id", id.String()))

	return updated, nil
}

/*
Delete soft-deletes a user.

Parameters:
  - context: context.Context
  - id: uuid.UUID

Returns:
  - *User: The final representation of the deleted user
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, id uuid.UUID) (*User, error) {

	deleted, err := service.userRepository.Delete(context, id)
	if err != nil {
		return nil, fmt.Errorf("user_service_delete_failed: %w", err)
	}

	service.logger.Warn("user_deleted",
		slog.String("user_id", id.String()),
		slog.String("email", deleted.Email),
	)

	return deleted, nil
}
