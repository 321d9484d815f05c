// Copyright (c) 2026 Cinerate. All rights reserved.

package rating

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

// RatingMin and RatingMax bound the accepted score range.
const (
	RatingMin = 1.0
	RatingMax = 10.0
)

// Handler implements the HTTP layer for ratings.
type Handler struct {
	ratingService *Service
}

// NewHandler constructs a new rating [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{ratingService: service}
}

// Routes returns a [chi.Router] configured with the rating domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Rating Management
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	// Per-movie listing
	router.Get("/movie/{movieID}", handler.listByMovie)

	return router
}

// parseUUID resolves a named URL parameter into a UUID.
func parseUUID(request *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(requestutil.Param(request, name))
	if err != nil {
		return uuid.Nil, apperr.ValidationError("Invalid identifier", apperr.FieldError{
			Field:   name,
			Message: "Must be a valid UUID",
		})
	}
	return id, nil
}

// # Rating Endpoints

// createRatingRequest defines the expected JSON payload for rating creation.
type createRatingRequest struct {
	UserID  string  `json:"user_id"`
	MovieID string  `json:"movie_id"`
	Rating  float64 `json:"rating"`
}

/*
POST /api/v1/ratings.

Description: Records a user's score for a movie. Each user rates a given
movie at most once.

Request:
  - body: createRatingRequest

Response:
  - 201: Rating: The created representation
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: ErrNotFound: Unknown user or movie
  - 409: ErrConflict: The user already rated this movie
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRatingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("user_id", input.UserID).UUID("user_id", input.UserID)
	v.Required("movie_id", input.MovieID).UUID("movie_id", input.MovieID)
	v.FloatRange("rating", input.Rating, RatingMin, RatingMax)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.ratingService.Create(request.Context(), CreateInput{
		UserID:  uuid.MustParse(input.UserID),
		MovieID: uuid.MustParse(input.MovieID),
		Rating:  input.Rating,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
GET /api/v1/ratings/{id}.

Description: Retrieves one rating with its user and movie expanded one
level deep.

Request:
  - id: string (UUID)

Response:
  - 200: Detail: The expanded representation
  - 404: ErrNotFound: Unknown or deleted rating
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := parseUUID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.ratingService.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

/*
GET /api/v1/ratings/movie/{movieID}.

Description: Lists a movie's ratings newest first, each with its rater
expanded.

Request:
  - movieID: string (UUID)
  - offset, limit: int (Pagination)

Response:
  - 200: []Detail with pagination metadata
  - 404: ErrNotFound: Unknown movie
*/
func (handler *Handler) listByMovie(writer http.ResponseWriter, request *http.Request) {
	movieID, err := parseUUID(request, "movieID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)

	details, total, err := handler.ratingService.ListByMovie(request.Context(), movieID, page.Offset, page.Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, details, pagination.NewMeta(page, total))
}

// updateRatingRequest defines the expected JSON payload for score updates.
type updateRatingRequest struct {
	Rating float64 `json:"rating"`
}

/*
PATCH /api/v1/ratings/{id}.

Description: Changes the score of an existing rating.

Request:
  - id: string (UUID)
  - body: updateRatingRequest

Response:
  - 200: Rating: The updated representation
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: ErrNotFound: Unknown or deleted rating
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := parseUUID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRatingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.FloatRange("rating", input.Rating, RatingMin, RatingMax)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.ratingService.Update(request.Context(), id, input.Rating)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
DELETE /api/v1/ratings/{id}.

Description: Soft-deletes a rating and returns its final representation.

Request:
  - id: string (UUID)

Response:
  - 200: Rating: The deleted representation
  - 404: ErrNotFound: Unknown or already deleted rating
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := parseUUID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.ratingService.Delete(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, deleted)
}
