// Copyright (c) 2026 Sodalis. All rights reserved.

package sec

// SessionPrincipal is the minimal identity projection written into the
// server-side session at login and read back on every guarded request.
//
// # Why an explicit marker?
//
// IsAuthenticated is the ONLY field the authorization guards trust. A
// partially populated principal (for example a stale session blob carrying a
// user id but a false marker) must never grant access, so mere presence of
// the struct is deliberately insufficient.
type SessionPrincipal struct {
	// UserID is the identifier of the backing account record.
	UserID string `json:"user_id"`

	// Username is kept in the session for log enrichment and display.
	Username string `json:"username"`

	// Role is the account's authorization tier at login time.
	Role Role `json:"role"`

	// IsAuthenticated is set true exactly once, at successful login.
	IsAuthenticated bool `json:"is_authenticated"`
}
