// Copyright (c) 2026 Cinerate. All rights reserved.

package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/cinerate/cinerate/internal/platform/apperr"
	requestutil "github.com/cinerate/cinerate/internal/platform/request"
	"github.com/cinerate/cinerate/internal/platform/respond"
	"github.com/cinerate/cinerate/internal/platform/validate"
	"github.com/cinerate/cinerate/pkg/pagination"
)

// Handler implements the HTTP layer for user management.
type Handler struct {
	userService *Service
}

// NewHandler constructs a new user [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{userService: service}
}

// Routes returns a [chi.Router] configured with the user domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// User Management
	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

// parseID resolves the {id} URL parameter into a UUID.
func parseID(request *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(requestutil.ID(request, "id"))
	if err != nil {
		return uuid.Nil, apperr.ValidationError("Invalid identifier", apperr.FieldError{
			Field:   "id",
			Message: "Must be a valid UUID",
		})
	}
	return id, nil
}

// # User Endpoints

/*
GET /api/v1/users.

Description: Lists users newest first, optionally narrowed by a
case-insensitive name search.

Request:
  - name: string (Optional search term)
  - offset, limit: int (Pagination)

Response:
  - 200: []User with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	users, total, err := handler.userService.List(request.Context(), Query{
		NameSearch: request.URL.Query().Get("name"),
		Offset:     page.Offset,
		Limit:      page.Limit,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(page, total))
}

// createUserRequest defines the expected JSON payload for user creation.
type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

/*
POST /api/v1/users.

Description: Registers a new user. Emails are normalized to lowercase and
unique across live accounts.

Request:
  - body: createUserRequest

Response:
  - 201: User: The created representation
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 409: ErrConflict: A user with this email already exists
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).MaxLen("name", input.Name, 100)
	v.Required("email", input.Email).Email("email", input.Email)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.userService.Create(request.Context(), CreateInput{
		Name:  input.Name,
		Email: input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
GET /api/v1/users/{id}.

Description: Retrieves a single user by their ID.

Request:
  - id: string (UUID)

Response:
  - 200: User: The representation
  - 404: ErrNotFound: Unknown or deleted user
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := parseID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.userService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

// updateUserRequest defines the expected JSON payload for partial updates.
type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

/*
PATCH /api/v1/users/{id}.

Description: Applies partial updates to an existing user.

Request:
  - id: string (UUID)
  - body: updateUserRequest (Partial JSON)

Response:
  - 200: User: The updated representation
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: ErrNotFound: Unknown or deleted user
  - 409: ErrConflict: The new email collides with an existing user
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := parseID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Name != nil {
		v.Required("name", *input.Name).MaxLen("name", *input.Name, 100)
	}
	if input.Email != nil {
		v.Required("email", *input.Email).Email("email", *input.Email)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.userService.Update(request.Context(), id, UpdateInput{
		Name:  input.Name,
		Email: input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
DELETE /api/v1/users/{id}.

Description: Soft-deletes a user and returns their final representation.

Request:
  - id: string (UUID)

Response:
  - 200: User: The deleted representation
  - 404: ErrNotFound: Unknown or already deleted user
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := parseID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.userService.Delete(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, deleted)
}
