// Copyright (c) 2026 Sodalis. All rights reserved.

package auth

import (
	"context"
	"time"

	"github.com/sodalis/api/internal/platform/apperr"
	"github.com/sodalis/api/internal/platform/sec"
)

// ErrNotFound is returned by principal lookups when no matching record exists.
// The identity resolver maps it onto the generic authentication failure so the
// distinction never reaches a client.
var ErrNotFound = apperr.NotFound("Member")

// ErrSessionNotFound is returned when a session id does not resolve to a live
// session (unknown, expired, or destroyed).
var ErrSessionNotFound = apperr.NotFound("Session")

// # Principal Data Access

// PrincipalRepository defines the data access contract for member accounts.
//
// All operations are atomic at the single-record level; no multi-record
// transactions are required by this layer.
type PrincipalRepository interface {

	/*
		FindByUsername returns the account with the given exact username.

		Parameters:
		  - context: context.Context
		  - username: string (case-sensitive)

		Returns:
		  - *Principal: Hydrated entity
		  - error: ErrNotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*Principal, error)

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Principal: Hydrated entity
		  - error: ErrNotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*Principal, error)

	/*
		UpdateLastLogin sets the account's last-authenticated timestamp.

		Description: Informational field only; concurrent logins race with
		last-write-wins semantics, which is acceptable.

		Parameters:
		  - context: context.Context
		  - id: string
		  - authenticatedAt: time.Time

		Returns:
		  - error: Persistence failures
	*/
	UpdateLastLogin(context context.Context, id string, authenticatedAt time.Time) error

	/*
		CreateAdministrator persists a bootstrap administrator account.

		Parameters:
		  - context: context.Context
		  - principal: *Principal (role already forced to the top tier)

		Returns:
		  - error: Constraint violations or persistence failures
	*/
	CreateAdministrator(context context.Context, principal *Principal) error

	/*
		List returns a page of member accounts ordered by creation time.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*Principal: Page of accounts
		  - int: Total account count
		  - error: Database retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]*Principal, int, error)
}

// # Session Data Access

// SessionStore defines the contract for the volatile server-side session
// storage keyed by the cookie-carried session id.
type SessionStore interface {

	/*
		Create persists a new session principal and returns its opaque id.

		Parameters:
		  - context: context.Context
		  - principal: *sec.SessionPrincipal

		Returns:
		  - string: Session id placed into the cookie
		  - error: Persistence failures
	*/
	Create(context context.Context, principal *sec.SessionPrincipal) (string, error)

	/*
		Get resolves a session id into its stored principal.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - *sec.SessionPrincipal: Stored identity projection
		  - error: ErrSessionNotFound or retrieval failures
	*/
	Get(context context.Context, sessionID string) (*sec.SessionPrincipal, error)

	/*
		Destroy removes a session. Destroying an unknown session is not an
		error (idempotent logout).

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - error: Deletion failures
	*/
	Destroy(context context.Context, sessionID string) error
}
