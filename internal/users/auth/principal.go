// Copyright (c) 2026 Sodalis. All rights reserved.

/*
Package auth implements the identity and access layer of the membership
platform.

It defines the core domain entity (Principal), the identity resolver that
turns credentials into an authenticated identity, the server-side session
store, and the HTTP surface for login, logout, and profile retrieval.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no
transport dependencies and encapsulate all business rules related to member
identity. Storage is reached only through the repository contracts in
store.go.
*/
package auth

import (
	"time"

	"github.com/sodalis/api/internal/platform/sec"
)

// # Domain Entities

// Principal represents a registered member of the association.
//
// Usernames are unique and case-sensitive by design: lookups are exact.
// Deactivation flips IsActive; records are never physically deleted by this
// layer.
type Principal struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string   `json:"display_name"`
	Role         sec.Role `json:"role"`

	// IsActive gates authentication: a deactivated account fails login even
	// with correct credentials.
	IsActive bool `json:"is_active"`

	// IsApproved and PlanName together form the membership-approval business
	// rule consumed by the access gate: a member is fully approved only when
	// the flag is set AND a plan is attached.
	IsApproved bool   `json:"is_approved"`
	PlanName   string `json:"plan_name,omitempty"`

	// LastLoginAt is nil until the first successful authentication and is
	// refreshed (best-effort) on every one after that.
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullyApproved reports whether the member has cleared the approval business
// rule: approval flag set AND a non-empty plan attached. A missing plan name
// is simply falsy, never an error.
func (p *Principal) FullyApproved() bool {
	return p.IsApproved && p.PlanName != ""
}

// IsElevated reports whether the member holds the top administrative tier.
func (p *Principal) IsElevated() bool {
	return p.Role.AtLeast(sec.RoleSuperAdmin)
}

// SessionView projects the Principal into the minimal identity written to the
// server-side session at login. The authenticated marker is set true here and
// nowhere else.
func (p *Principal) SessionView() *sec.SessionPrincipal {
	return &sec.SessionPrincipal{
		UserID:          p.ID,
		Username:        p.Username,
		Role:            p.Role,
		IsAuthenticated: true,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldRole        = "role"
	FieldUser        = "user"
	FieldMessage     = "message"
)
