// Copyright (c) 2026 Sodalis. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sodalis/api/internal/platform/apperr"
	"github.com/sodalis/api/internal/platform/ctxutil"
	"github.com/sodalis/api/internal/platform/sec"
	"github.com/sodalis/api/internal/platform/validate"
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
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Principal extracts the session principal from the request context.

Returns nil if the request is anonymous.
*/
func Principal(request *http.Request) *sec.SessionPrincipal {
	return ctxutil.GetPrincipal(request.Context())
}

/*
RequiredPrincipal ensures the request is authenticated and returns the principal.

Returns:
  - *sec.SessionPrincipal: The authenticated session principal
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredPrincipal(request *http.Request) (*sec.SessionPrincipal, error) {

	principal := ctxutil.GetPrincipal(request.Context())

	// The marker, not mere presence, decides authentication.
	if principal == nil || !principal.IsAuthenticated {
		return nil, apperr.Unauthorized(sec.MessageAuthenticationRequired)
	}

	return principal, nil
}

/*
RequiredUserID returns the account ID of the currently logged-in member.

Returns:
  - string: Account UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {

	principal, err := RequiredPrincipal(request)
	if err != nil {
		return "", err
	}

	return principal.UserID, nil
}
