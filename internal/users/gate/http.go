// Copyright (c) 2026 Sodalis. All rights reserved.

package gate

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/sodalis/api/internal/platform/request"
	"github.com/sodalis/api/internal/platform/respond"
)

// Handler exposes the access-gate evaluation over HTTP.
type Handler struct {
	gateService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{gateService: service}
}

// Routes returns a [chi.Router] configured with access-gate routes.
//
// # Endpoints
//   - GET /evaluate : Evaluates the caller's access to a target path.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/evaluate", handler.evaluate)
	return router
}

/*
Evaluate computes the access decision for the calling session.

GET /api/v1/access/evaluate?path=/dashboard&role=admin

Description: Anonymous callers are evaluated too; they simply resolve to the
unauthenticated outcome. The role query parameter marks elevated routes; any
value other than empty means the route is reserved for administrators.

Request:
  - Query: path (current navigation path), role (optional requirement)

Response:
  - 200: Outcome: State plus optional redirect target
*/
func (handler *Handler) evaluate(writer http.ResponseWriter, request *http.Request) {
	principal := requestutil.Principal(request)

	currentPath := request.URL.Query().Get("path")
	requiresElevated := request.URL.Query().Get("role") != ""

	outcome, err := handler.gateService.EvaluateFor(request.Context(), principal, requiresElevated, currentPath)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, outcome)
}
