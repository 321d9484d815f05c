// Copyright (c) 2026 Cinerate. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/cinerate/cinerate/internal/platform/ctxutil"
	"github.com/cinerate/cinerate/internal/platform/validate"
	"github.com/go-chi/chi/v5"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter (UUID/Slug) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Identity extracts the caller identity propagated by the gateway headers.

Returns nil if the request carried no identity.
*/
func Identity(request *http.Request) *ctxutil.Identity {
	return ctxutil.GetIdentity(request.Context())
}

/*
CallerID returns the User ID of the current caller, or the empty string
when the request is anonymous.
*/
func CallerID(request *http.Request) string {

	// Get caller identity
	identity := ctxutil.GetIdentity(request.Context())

	// Anonymous requests have no caller ID
	if identity == nil {
		return ""
	}

	return identity.UserID
}
