// Copyright (c) 2026 Sodalis. All rights reserved.

package sec

// # Member Roles

// Role represents the authorization level granted to an account.
//
// The set is closed: elevation checks always go through [Role.AtLeast]
// instead of comparing raw strings, avoiding typo-class bugs.
type Role string

const (
	// Unrestricted system access, required by all admin-only surfaces
	RoleSuperAdmin Role = "super_admin"

	// Can manage association content and review membership applications
	RoleAdmin Role = "admin"

	// Default role for standard registered members
	RoleUser Role = "user"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// IsValid reports whether the role is one of the closed enumeration values.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleSuperAdmin:
		return 30
	case RoleAdmin:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
