// Copyright (c) 2026 Sodalis. All rights reserved.

package gate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sodalis/api/internal/platform/constants"
	"github.com/sodalis/api/internal/platform/sec"
	"github.com/sodalis/api/internal/users/auth"
	"github.com/sodalis/api/internal/users/gate"
)

// # Helpers

func approvedMember() *auth.Principal {
	return &auth.Principal{
		ID:         "u1",
		Username:   "alice",
		Role:       sec.RoleUser,
		IsActive:   true,
		IsApproved: true,
		PlanName:   "Júnior",
	}
}

func unapprovedMember() *auth.Principal {
	m := approvedMember()
	m.IsApproved = false
	return m
}

func superAdmin() *auth.Principal {
	m := approvedMember()
	m.Role = sec.RoleSuperAdmin
	return m
}

// # Transition Function

/*
TestEvaluate covers every state of the transition function.
*/
func TestEvaluate(t *testing.T) {
	tests := []struct {
		name             string
		snapshot         gate.Snapshot
		expectedState    gate.State
		expectedRedirect string
	}{
		{
			"identity_loading",
			gate.Snapshot{IdentityLoading: true, CurrentPath: "/dashboard"},
			gate.StateLoading, "",
		},
		{
			"application_loading_member_route",
			gate.Snapshot{Member: approvedMember(), ApplicationLoading: true, CurrentPath: "/dashboard"},
			gate.StateLoading, "",
		},
		{
			// Admin areas never wait on the application lookup.
			"application_loading_elevated_route",
			gate.Snapshot{Member: superAdmin(), ApplicationLoading: true, RequiresElevated: true, CurrentPath: "/admin"},
			gate.StateAuthorized, "",
		},
		{
			"anonymous",
			gate.Snapshot{CurrentPath: "/dashboard"},
			gate.StateUnauthenticated, constants.LoginPath,
		},
		{
			"anonymous_already_on_login",
			gate.Snapshot{CurrentPath: constants.LoginPath},
			gate.StateUnauthenticated, "",
		},
		{
			"elevated_route_plain_user",
			gate.Snapshot{Member: approvedMember(), RequiresElevated: true, CurrentPath: "/admin"},
			gate.StateDenied, "",
		},
		{
			"elevated_route_super_admin",
			gate.Snapshot{Member: superAdmin(), RequiresElevated: true, CurrentPath: "/admin"},
			gate.StateAuthorized, "",
		},
		{
			"unapproved_profile",
			gate.Snapshot{Member: unapprovedMember(), CurrentPath: "/dashboard"},
			gate.StatePendingApproval, constants.PendingApprovalPath,
		},
		{
			"approved_flag_but_empty_plan",
			gate.Snapshot{
				Member:      &auth.Principal{ID: "u1", IsActive: true, IsApproved: true, PlanName: ""},
				CurrentPath: "/dashboard",
			},
			gate.StatePendingApproval, constants.PendingApprovalPath,
		},
		{
			// An approved profile with a lingering pending application still gates.
			"approved_profile_pending_application",
			gate.Snapshot{
				Member:      approvedMember(),
				Application: &gate.Application{ID: "a1", UserID: "u1", Status: gate.StatusPending},
				CurrentPath: "/dashboard",
			},
			gate.StatePendingApproval, constants.PendingApprovalPath,
		},
		{
			"approved_profile_rejected_application",
			gate.Snapshot{
				Member:      approvedMember(),
				Application: &gate.Application{ID: "a1", UserID: "u1", Status: gate.StatusRejected},
				CurrentPath: "/dashboard",
			},
			gate.StateAuthorized, "",
		},
		{
			"fully_approved_no_application",
			gate.Snapshot{Member: approvedMember(), CurrentPath: "/dashboard"},
			gate.StateAuthorized, "",
		},
		{
			"unapproved_already_on_pending_path",
			gate.Snapshot{Member: unapprovedMember(), CurrentPath: constants.PendingApprovalPath},
			gate.StatePendingApproval, "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := gate.Evaluate(tt.snapshot)

			assert.Equal(t, tt.expectedState, outcome.State)
			assert.Equal(t, tt.expectedRedirect, outcome.RedirectTo)
		})
	}
}

// # Stateful Gate

/*
TestGate_SingleNavigationPerTransition verifies re-applying the same snapshot
never re-fires the redirect.
*/
func TestGate_SingleNavigationPerTransition(t *testing.T) {
	var navigations []string
	g := gate.New(func(path string) { navigations = append(navigations, path) })

	snapshot := gate.Snapshot{Member: unapprovedMember(), CurrentPath: "/dashboard"}

	first := g.Apply(snapshot)
	second := g.Apply(snapshot)
	third := g.Apply(snapshot)

	assert.Equal(t, gate.StatePendingApproval, first.State)
	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
	assert.Equal(t, []string{constants.PendingApprovalPath}, navigations)
}

/*
TestGate_NoNavigationWhenAlreadyAtTarget verifies landing directly on the
pending-approval page renders without any redirect.
*/
func TestGate_NoNavigationWhenAlreadyAtTarget(t *testing.T) {
	var navigations []string
	g := gate.New(func(path string) { navigations = append(navigations, path) })

	outcome := g.Apply(gate.Snapshot{Member: unapprovedMember(), CurrentPath: constants.PendingApprovalPath})

	assert.Equal(t, gate.StatePendingApproval, outcome.State)
	assert.Empty(t, navigations)
}

/*
TestGate_RefreshPreservesSettledState verifies a background refetch does not
flicker an authorized view back to loading.
*/
func TestGate_RefreshPreservesSettledState(t *testing.T) {
	var navigations []string
	g := gate.New(func(path string) { navigations = append(navigations, path) })

	settled := g.Apply(gate.Snapshot{Member: approvedMember(), CurrentPath: "/dashboard"})
	assert.Equal(t, gate.StateAuthorized, settled.State)

	// Identity refetch in flight: the gate keeps reporting Authorized.
	refreshing := g.Apply(gate.Snapshot{IdentityLoading: true, CurrentPath: "/dashboard"})
	assert.Equal(t, gate.StateAuthorized, refreshing.State)

	// Refresh completes with the same data: still no navigation ever fired.
	after := g.Apply(gate.Snapshot{Member: approvedMember(), CurrentPath: "/dashboard"})
	assert.Equal(t, gate.StateAuthorized, after.State)
	assert.Empty(t, navigations)
}

/*
TestGate_InitialLoadReportsLoading verifies the very first evaluation, before
anything has settled, is allowed to be Loading.
*/
func TestGate_InitialLoadReportsLoading(t *testing.T) {
	g := gate.New(nil)

	outcome := g.Apply(gate.Snapshot{IdentityLoading: true, CurrentPath: "/dashboard"})

	assert.Equal(t, gate.StateLoading, outcome.State)
}

/*
TestGate_TransitionAfterLogout verifies that moving from an authorized state
to anonymous fires exactly one navigation to the login page.
*/
func TestGate_TransitionAfterLogout(t *testing.T) {
	var navigations []string
	g := gate.New(func(path string) { navigations = append(navigations, path) })

	g.Apply(gate.Snapshot{Member: approvedMember(), CurrentPath: "/dashboard"})
	out := g.Apply(gate.Snapshot{CurrentPath: "/dashboard"})
	g.Apply(gate.Snapshot{CurrentPath: "/dashboard"})

	assert.Equal(t, gate.StateUnauthenticated, out.State)
	assert.Equal(t, []string{constants.LoginPath}, navigations)
}
