// Copyright (c) 2026 Sodalis. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sodalis/api/internal/platform/constants"
	"github.com/sodalis/api/internal/platform/metrics"
	"github.com/sodalis/api/internal/platform/middleware"
	requestutil "github.com/sodalis/api/internal/platform/request"
	"github.com/sodalis/api/internal/platform/respond"
	"github.com/sodalis/api/internal/platform/validate"
	"github.com/sodalis/api/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the session lifecycle entry points (Login, Logout,
// Profile) and the administrative member directory.
type Handler struct {
	authService *Service
	metrics     *metrics.Metrics
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, m *metrics.Metrics) *Handler {
	return &Handler{authService: service, metrics: m}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /login  : Authenticates and sets the session cookie.
//   - POST /logout : Destroys the session and clears the cookie.
//   - GET  /me     : Returns the authenticated member's profile.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuthenticated)
		r.Get("/me", handler.me)
	})

	return router
}

// AdminRoutes returns a [chi.Router] with administrator-only endpoints.
//
// The caller is responsible for mounting it behind the elevated-privilege
// guard so every route inherits the 401/403 contract.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireElevated)
	router.Get("/members", handler.listMembers)
	return router
}

// # Request Payloads

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
Login authenticates a member and establishes a session.

POST /api/v1/auth/login

Description: Verifies credentials, persists a server-side session in Redis,
and injects the session cookie into the response.

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: Member profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 401: ErrUnauthorized: Invalid credentials or deactivated account
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		handler.metrics.IncrementLogin("failure")
		respond.Error(writer, request, err)
		return
	}
	handler.metrics.IncrementLogin("success")

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    session.SessionID,
		Path:     constants.SessionCookiePath,
		Expires:  session.ExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.OK(writer, map[string]any{
		FieldUser: session.Principal,
	})
}

/*
Logout terminates the current member session.

POST /api/v1/auth/logout

Description: Destroys the server-side session (if present) and clears the
session cookie from the client. Safe to call without an active session.

Response:
  - 204: No Content: Session terminated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.SessionCookieName)

	if err == nil && cookie != nil && cookie.Value != "" {
		_ = handler.authService.Logout(request.Context(), cookie.Value)
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.NoContent(writer)
}

/*
Me returns the full profile of the authenticated member.

GET /api/v1/auth/me

Response:
  - 200: Member profile
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Session points at a deleted account
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	principal, err := handler.authService.Profile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, principal)
}

/*
ListMembers returns a paginated page of member accounts.

GET /api/v1/admin/members

Description: Administrator-only directory listing ordered by creation time.

Request:
  - Query: page, limit

Response:
  - 200: Paginated member list
  - 401: ErrUnauthorized: Authentication required
  - 403: ErrForbidden: Elevated privileges required
*/
func (handler *Handler) listMembers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	members, meta, err := handler.authService.ListMembers(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, members, meta)
}
