// Copyright (c) 2026 Sodalis. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, session settings, and cross-cutting keys that are
shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Sessions: Cookie configuration and Redis key taxonomy.
  - Routing: Client paths targeted by the access-gate redirects.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "sodalis-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Sessions

const (
	// SessionCookieName is the name of the cookie carrying the server-side session id.
	SessionCookieName = "sodalis_session"

	// SessionCookiePath scopes the session cookie to the whole application.
	SessionCookiePath = "/"
)

// # Client Routing

// Paths on the membership SPA targeted by access-gate redirects. The gate
// compares the current navigation path against these to avoid redirect loops.
const (
	// LoginPath is where unauthenticated visitors are sent.
	LoginPath = "/login"

	// PendingApprovalPath is where members without an approved plan are sent.
	PendingApprovalPath = "/pending-approval"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixSession = "auth:session:"
)
