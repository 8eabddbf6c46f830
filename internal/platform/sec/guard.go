// Copyright (c) 2026 Sodalis. All rights reserved.

package sec

import "net/http"

// # Guard Messages

// Client-safe denial messages. These are part of the API contract with the
// membership SPA and must not change without coordinating a frontend release.
const (
	// MessageAuthenticationRequired accompanies every 401 guard denial.
	MessageAuthenticationRequired = "authentication required"

	// MessageElevatedRequired accompanies 403 denials for non-admin callers.
	MessageElevatedRequired = "elevated privileges required"
)

// # Guard Decisions

// GuardDecision is the explicit allow/deny outcome of a guard predicate.
//
// Guards are pure: they read the session principal and return a decision
// instead of mutating an ambient request object. Transport adapters
// (HTTP middleware, RPC interceptors) translate a denial into their own
// short-circuit mechanics.
type GuardDecision struct {
	// Allowed is true when the chain may continue.
	Allowed bool

	// Status is the HTTP status class of a denial (401 or 403). Zero when allowed.
	Status int

	// Message is the client-safe denial message. Empty when allowed.
	Message string
}

// allow is the single success value shared by all guards.
var allow = GuardDecision{Allowed: true}

// RequireAuthenticated admits a request only when a session principal is
// present AND its authenticated marker is true.
func RequireAuthenticated(principal *SessionPrincipal) GuardDecision {
	if principal == nil || !principal.IsAuthenticated {
		return GuardDecision{
			Status:  http.StatusUnauthorized,
			Message: MessageAuthenticationRequired,
		}
	}
	return allow
}

// RequireElevated admits a request only when it is authenticated AND the
// principal holds the top administrative tier.
//
// # Ordering
//
// The authentication check always runs first, so an anonymous caller probing
// an admin-only resource receives the same 401 as on any protected route —
// never a 403 that would leak the resource's elevation requirement.
func RequireElevated(principal *SessionPrincipal) GuardDecision {
	if decision := RequireAuthenticated(principal); !decision.Allowed {
		return decision
	}

	if !principal.Role.AtLeast(RoleSuperAdmin) {
		return GuardDecision{
			Status:  http.StatusForbidden,
			Message: MessageElevatedRequired,
		}
	}

	return allow
}
