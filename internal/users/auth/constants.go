// Copyright (c) 2026 Sodalis. All rights reserved.

package auth

import "time"

// # Session Constraints

const (
	// SessionTTL is the duration a server-side session remains valid.
	// Long-lived (30 days) to provide a good member experience; destruction
	// before expiry happens only through logout.
	SessionTTL = 30 * 24 * time.Hour

	// SessionIDLength is the byte length of the random session identifier.
	// 32 bytes of entropy makes session ids unguessable.
	SessionIDLength = 32
)

// # Outcome Messages

const (
	// MessageAuthenticationFailed is the single client-safe message for every
	// failed login: unknown username, wrong password, and deactivated account
	// are deliberately indistinguishable to prevent account enumeration.
	MessageAuthenticationFailed = "authentication failed"
)
