// Copyright (c) 2026 Cinerate. All rights reserved.

package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/cinerate/cinerate/internal/platform/apperr"
	requestutil "github.com/cinerate/cinerate/internal/platform/request"
	"github.com/cinerate/cinerate/internal/platform/respond"
	"github.com/cinerate/cinerate/internal/rating"
	"github.com/cinerate/cinerate/internal/user"
	"github.com/cinerate/cinerate/pkg/pagination"
)

// ProfileHandler serves the composed user-profile view: a user together
// with the movies they rated.
//
// It lives in the composition root because it spans two domains; neither
// the user nor the rating package depends on the other's handlers.
type ProfileHandler struct {
	userService   *user.Service
	ratingService *rating.Service
}

// NewProfileHandler constructs a new [ProfileHandler].
func NewProfileHandler(userService *user.Service, ratingService *rating.Service) *ProfileHandler {
	return &ProfileHandler{
		userService:   userService,
		ratingService: ratingService,
	}
}

// profileResponse is the composed profile payload.
type profileResponse struct {
	User    *user.User       `json:"user"`
	Ratings []*rating.Detail `json:"ratings"`
	Meta    pagination.Meta  `json:"ratings_meta"`
}

/*
GET /api/v1/user-profile/{userID}.

Description: Retrieves a user together with a page of the ratings they
gave, each rating carrying its movie expanded one level deep.

Request:
  - userID: string (UUID)
  - offset, limit: int (Pagination over the ratings)

Response:
  - 200: profileResponse
  - 404: ErrNotFound: Unknown or deleted user
*/
func (handler *ProfileHandler) Get(writer http.ResponseWriter, request *http.Request) {
	userID, err := uuid.Parse(requestutil.Param(request, "userID"))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid identifier", apperr.FieldError{
			Field:   "userID",
			Message: "Must be a valid UUID",
		}))
		return
	}

	found, err := handler.userService.Get(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)

	ratings, total, err := handler.ratingService.ListByUser(request.Context(), userID, page.Offset, page.Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profileResponse{
		User:    found,
		Ratings: ratings,
		Meta:    pagination.NewMeta(page, total),
	})
}
