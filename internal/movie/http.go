// Copyright (c) 2026 Cinerate. All rights reserved.

package movie

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

// Handler implements the HTTP layer for the movie catalog.
type Handler struct {
	movieService *Service
}

// NewHandler constructs a new movie [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{movieService: service}
}

// Routes returns a [chi.Router] configured with the movie domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Catalog Management
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

// # Catalog Endpoints

/*
GET /api/v1/movies.

Description: Lists movies newest first, optionally narrowed by a
case-insensitive title search.

Request:
  - title: string (Optional search term)
  - offset, limit: int (Pagination)

Response:
  - 200: []Movie with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	movies, total, err := handler.movieService.List(request.Context(), Query{
		TitleSearch: request.URL.Query().Get("title"),
		Offset:      page.Offset,
		Limit:       page.Limit,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, movies, pagination.NewMeta(page, total))
}

// createMovieRequest defines the expected JSON payload for movie creation.
type createMovieRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

/*
POST /api/v1/movies.

Description: Registers a new movie. Titles are unique across the catalog.

Request:
  - body: createMovieRequest

Response:
  - 201: Movie: The created representation
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 409: ErrConflict: A movie with this title already exists
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createMovieRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("title", input.Title).MaxLen("title", input.Title, 255)
	if input.Description != nil {
		v.MaxLen("description", *input.Description, 2000)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.movieService.Create(request.Context(), CreateInput{
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
GET /api/v1/movies/{id}.

Description: Retrieves a single movie by its ID, served from the detail
cache when warm.

Request:
  - id: string (UUID)

Response:
  - 200: Movie: The representation
  - 404: ErrNotFound: Unknown or deleted movie
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := parseID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.movieService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

// updateMovieRequest defines the expected JSON payload for partial updates.
type updateMovieRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

/*
PATCH /api/v1/movies/{id}.

Description: Applies partial updates to an existing movie.

Request:
  - id: string (UUID)
  - body: updateMovieRequest (Partial JSON)

Response:
  - 200: Movie: The updated representation
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: ErrNotFound: Unknown or deleted movie
  - 409: ErrConflict: The new title collides with an existing movie
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := parseID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMovieRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Title != nil {
		v.Required("title", *input.Title).MaxLen("title", *input.Title, 255)
	}
	if input.Description != nil {
		v.MaxLen("description", *input.Description, 2000)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.movieService.Update(request.Context(), id, UpdateInput{
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
DELETE /api/v1/movies/{id}.

Description: Soft-deletes a movie and returns its final representation.

Request:
  - id: string (UUID)

Response:
  - 200: Movie: The deleted representation
  - 404: ErrNotFound: Unknown or already deleted movie
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := parseID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.movieService.Delete(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, deleted)
}
