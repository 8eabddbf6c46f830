// Copyright (c) 2026 Sodalis. All rights reserved.

package middleware

import (
	"context"
	"net/http"

	"github.com/sodalis/api/internal/platform/apperr"
	"github.com/sodalis/api/internal/platform/constants"
	"github.com/sodalis/api/internal/platform/ctxutil"
	"github.com/sodalis/api/internal/platform/respond"
	"github.com/sodalis/api/internal/platform/sec"
)

// SessionReader defines the interface needed to resolve session principals
// in middleware.
//
// # Why an interface?
//
// Defining SessionReader here decouples the middleware from the Redis-backed
// session store implementation, allowing us to easily inject fakes during
// unit testing.
type SessionReader interface {
	Get(ctx context.Context, sessionID string) (*sec.SessionPrincipal, error)
}

// LoadSession resolves the session cookie into a [sec.SessionPrincipal].
//
// # Flow
//  1. Check for the session cookie.
//  2. If absent, the request proceeds as anonymous.
//  3. If present, look the session up in the store.
//  4. Unknown or expired sessions also proceed as anonymous — the guards,
//     not this loader, decide whether anonymity is acceptable for a route.
//  5. Inject the [*sec.SessionPrincipal] into the request context.
func LoadSession(store SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			cookie, err := request.Cookie(constants.SessionCookieName)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Session Resolution ─────────────────────────────────────────
			principal, err := store.Get(request.Context(), cookie.Value)
			if err != nil || principal == nil {
				// A dead session id is indistinguishable from no session.
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuthenticated blocks requests whose session principal is missing or
// carries a false authenticated marker.
//
// # Usage
//
// Must be registered in the router AFTER [LoadSession].
//
// The denial contract is `{"success": false, "message": "authentication
// required"}` with status 401, produced by the pure [sec.RequireAuthenticated]
// predicate.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		principal := ctxutil.GetPrincipal(request.Context())

		if decision := sec.RequireAuthenticated(principal); !decision.Allowed {
			deny(writer, request, decision)
			return
		}

		next.ServeHTTP(writer, request)
	})
}

// RequireElevated blocks requests unless the session principal is
// authenticated AND holds the top administrative tier.
//
// # Usage
//
// Must be registered in the router AFTER [LoadSession]. It subsumes
// [RequireAuthenticated] so you don't need to mount both.
//
// # Flow
//  1. Authentication check (401 first — never leak that a route is admin-only
//     to anonymous callers).
//  2. Role check via [sec.Role.AtLeast] (403 "elevated privileges required").
func RequireElevated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		principal := ctxutil.GetPrincipal(request.Context())

		if decision := sec.RequireElevated(principal); !decision.Allowed {
			deny(writer, request, decision)
			return
		}

		next.ServeHTTP(writer, request)
	})
}

// deny translates a pure guard decision into the standard HTTP denial envelope.
func deny(writer http.ResponseWriter, request *http.Request, decision sec.GuardDecision) {
	switch decision.Status {
	case http.StatusForbidden:
		respond.Error(writer, request, apperr.Forbidden(decision.Message))
	default:
		respond.Error(writer, request, apperr.Unauthorized(decision.Message))
	}
}
