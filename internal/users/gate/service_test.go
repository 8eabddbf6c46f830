// Copyright (c) 2026 Sodalis. All rights reserved.

package gate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sodalis/api/internal/platform/constants"
	"github.com/sodalis/api/internal/platform/sec"
	"github.com/sodalis/api/internal/users/auth"
	"github.com/sodalis/api/internal/users/gate"
)

// # Test Fakes

type fakePrincipalReader struct {
	byID map[string]*auth.Principal
}

func (r *fakePrincipalReader) FindByID(_ context.Context, id string) (*auth.Principal, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, auth.ErrNotFound
	}
	return p, nil
}

type fakeApplicationRepository struct {
	applications map[string]*gate.Application
	err          error
}

func (r *fakeApplicationRepository) FindByUserID(_ context.Context, userID string) (*gate.Application, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.applications[userID], nil
}

/*
TestService_EvaluateFor covers the server-side snapshot assembly: member
resolution, application lookup, and the stale-session fallback.
*/
func TestService_EvaluateFor(t *testing.T) {
	approved := &auth.Principal{
		ID: "u1", Username: "alice", Role: sec.RoleUser,
		IsActive: true, IsApproved: true, PlanName: "Titular",
	}

	principals := &fakePrincipalReader{byID: map[string]*auth.Principal{"u1": approved}}
	applications := &fakeApplicationRepository{applications: map[string]*gate.Application{}}
	service := gate.NewService(principals, applications)

	session := &sec.SessionPrincipal{UserID: "u1", Username: "alice", Role: sec.RoleUser, IsAuthenticated: true}

	t.Run("approved_member", func(t *testing.T) {
		outcome, err := service.EvaluateFor(context.Background(), session, false, "/dashboard")
		require.NoError(t, err)
		assert.Equal(t, gate.StateAuthorized, outcome.State)
	})

	t.Run("anonymous_caller", func(t *testing.T) {
		outcome, err := service.EvaluateFor(context.Background(), nil, false, "/dashboard")
		require.NoError(t, err)
		assert.Equal(t, gate.StateUnauthenticated, outcome.State)
		assert.Equal(t, constants.LoginPath, outcome.RedirectTo)
	})

	t.Run("stale_session_deleted_account", func(t *testing.T) {
		ghost := &sec.SessionPrincipal{UserID: "gone", IsAuthenticated: true}
		outcome, err := service.EvaluateFor(context.Background(), ghost, false, "/dashboard")
		require.NoError(t, err)
		assert.Equal(t, gate.StateUnauthenticated, outcome.State)
	})

	t.Run("pending_application_gates", func(t *testing.T) {
		applications.applications["u1"] = &gate.Application{ID: "a1", UserID: "u1", Status: gate.StatusPending}
		defer delete(applications.applications, "u1")

		outcome, err := service.EvaluateFor(context.Background(), session, false, "/dashboard")
		require.NoError(t, err)
		assert.Equal(t, gate.StatePendingApproval, outcome.State)
		assert.Equal(t, constants.PendingApprovalPath, outcome.RedirectTo)
	})

	t.Run("application_storage_failure", func(t *testing.T) {
		applications.err = errors.New("connection reset")
		defer func() { applications.err = nil }()

		_, err := service.EvaluateFor(context.Background(), session, false, "/dashboard")
		assert.ErrorContains(t, err, "connection reset")
	})

	t.Run("elevated_route_skips_application_lookup", func(t *testing.T) {
		applications.err = errors.New("must not be called")
		defer func() { applications.err = nil }()

		outcome, err := service.EvaluateFor(context.Background(), session, true, "/admin")
		require.NoError(t, err)
		assert.Equal(t, gate.StateDenied, outcome.State)
	})
}
