// Copyright (c) 2026 Sodalis. All rights reserved.

package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sodalis/api/internal/platform/apperr"
	"github.com/sodalis/api/internal/platform/sec"
	"github.com/sodalis/api/internal/users/auth"
	"github.com/sodalis/api/pkg/pagination"
)

// # Test Fakes

type fakePrincipalRepository struct {
	byUsername map[string]*auth.Principal
	byID       map[string]*auth.Principal

	lookupErr      error
	lastLoginErr   error
	lastLoginCalls int
	created        []*auth.Principal
}

func newFakePrincipalRepository(principals ...*auth.Principal) *fakePrincipalRepository {
	repo := &fakePrincipalRepository{
		byUsername: map[string]*auth.Principal{},
		byID:       map[string]*auth.Principal{},
	}
	for _, p := range principals {
		repo.byUsername[p.Username] = p
		repo.byID[p.ID] = p
	}
	return repo
}

func (r *fakePrincipalRepository) FindByUsername(_ context.Context, username string) (*auth.Principal, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	p, ok := r.byUsername[username]
	if !ok {
		return nil, auth.ErrNotFound
	}
	return p, nil
}

func (r *fakePrincipalRepository) FindByID(_ context.Context, id string) (*auth.Principal, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, auth.ErrNotFound
	}
	return p, nil
}

func (r *fakePrincipalRepository) UpdateLastLogin(_ context.Context, _ string, _ time.Time) error {
	r.lastLoginCalls++
	return r.lastLoginErr
}

func (r *fakePrincipalRepository) CreateAdministrator(_ context.Context, p *auth.Principal) error {
	r.created = append(r.created, p)
	r.byUsername[p.Username] = p
	r.byID[p.ID] = p
	return nil
}

func (r *fakePrincipalRepository) List(_ context.Context, _, _ int) ([]*auth.Principal, int, error) {
	all := make([]*auth.Principal, 0, len(r.byID))
	for _, p := range r.byID {
		all = append(all, p)
	}
	return all, len(all), nil
}

type fakeSessionStore struct {
	sessions  map[string]*sec.SessionPrincipal
	createErr error
	nextID    string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*sec.SessionPrincipal{}, nextID: "session-1"}
}

func (s *fakeSessionStore) Create(_ context.Context, principal *sec.SessionPrincipal) (string, error) {
	if s.createErr != nil {
		return "", s.createErr
	}
	s.sessions[s.nextID] = principal
	return s.nextID, nil
}

func (s *fakeSessionStore) Get(_ context.Context, sessionID string) (*sec.SessionPrincipal, error) {
	p, ok := s.sessions[sessionID]
	if !ok {
		return nil, auth.ErrSessionNotFound
	}
	return p, nil
}

func (s *fakeSessionStore) Destroy(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

// # Helpers

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func activeMember(t *testing.T, username, password string) *auth.Principal {
	t.Helper()
	hashed, err := sec.HashPassword(password)
	require.NoError(t, err)
	return &auth.Principal{
		ID:           "user-" + username,
		Username:     username,
		Email:        username + "@example.org",
		PasswordHash: hashed,
		Role:         sec.RoleUser,
		IsActive:     true,
	}
}

// # Authenticate

/*
TestService_Authenticate_Success verifies the happy path including the
last-login side effect.
*/
func TestService_Authenticate_Success(t *testing.T) {
	member := activeMember(t, "alice", "s3cret")
	repo := newFakePrincipalRepository(member)
	service := auth.NewService(repo, newFakeSessionStore(), discardLogger())

	principal, err := service.Authenticate(context.Background(), "alice", "s3cret")

	require.NoError(t, err)
	assert.Equal(t, member.ID, principal.ID)
	assert.Equal(t, 1, repo.lastLoginCalls)
	require.NotNil(t, principal.LastLoginAt)
	assert.WithinDuration(t, time.Now(), *principal.LastLoginAt, 5*time.Second)
}

/*
TestService_Authenticate_IndistinguishableFailures checks that an unknown
username, a wrong password, and a deactivated account all produce the exact
same outcome shape.
*/
func TestService_Authenticate_IndistinguishableFailures(t *testing.T) {
	deactivated := activeMember(t, "bob", "rightpass")
	deactivated.IsActive = false

	repo := newFakePrincipalRepository(activeMember(t, "alice", "s3cret"), deactivated)
	service := auth.NewService(repo, newFakeSessionStore(), discardLogger())

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown_username", "nouser", "anything"},
		{"wrong_password", "alice", "wrongpass"},
		{"deactivated_correct_password", "bob", "rightpass"},
	}

	var outcomes []*apperr.AppError
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := service.Authenticate(context.Background(), tt.username, tt.password)

			assert.Nil(t, principal)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, 401, ae.HTTPStatus)
			assert.Equal(t, auth.MessageAuthenticationFailed, ae.Message)
			outcomes = append(outcomes, ae)
		})
	}

	// Every rejection carries the identical code and message.
	for _, ae := range outcomes[1:] {
		assert.Equal(t, outcomes[0].Code, ae.Code)
		assert.Equal(t, outcomes[0].Message, ae.Message)
	}
}

/*
TestService_Authenticate_StorageFailure checks that a failing lookup
propagates as an internal error, never as a credential rejection.
*/
func TestService_Authenticate_StorageFailure(t *testing.T) {
	repo := newFakePrincipalRepository()
	repo.lookupErr = errors.New("connection refused")
	service := auth.NewService(repo, newFakeSessionStore(), discardLogger())

	principal, err := service.Authenticate(context.Background(), "alice", "s3cret")

	assert.Nil(t, principal)
	require.Error(t, err)
	assert.Nil(t, apperr.As(err))
	assert.ErrorContains(t, err, "connection refused")
}

/*
TestService_Authenticate_LastLoginFailureSwallowed verifies that a failing
timestamp update never fails a correct login.
*/
func TestService_Authenticate_LastLoginFailureSwallowed(t *testing.T) {
	member := activeMember(t, "alice", "s3cret")
	repo := newFakePrincipalRepository(member)
	repo.lastLoginErr = errors.New("write timeout")
	service := auth.NewService(repo, newFakeSessionStore(), discardLogger())

	principal, err := service.Authenticate(context.Background(), "alice", "s3cret")

	require.NoError(t, err)
	assert.Equal(t, member.ID, principal.ID)
	// The timestamp was not applied since the write failed.
	assert.Nil(t, principal.LastLoginAt)
}

// # Login & Logout

/*
TestService_Login_CreatesSession verifies session creation with the
authenticated marker set.
*/
func TestService_Login_CreatesSession(t *testing.T) {
	member := activeMember(t, "alice", "s3cret")
	sessions := newFakeSessionStore()
	service := auth.NewService(newFakePrincipalRepository(member), sessions, discardLogger())

	login, err := service.Login(context.Background(), auth.LoginInput{Username: "alice", Password: "s3cret"})

	require.NoError(t, err)
	assert.NotEmpty(t, login.SessionID)

	stored := sessions.sessions[login.SessionID]
	require.NotNil(t, stored)
	assert.True(t, stored.IsAuthenticated)
	assert.Equal(t, member.ID, stored.UserID)
	assert.Equal(t, sec.RoleUser, stored.Role)
}

/*
TestService_Logout_Idempotent verifies destroying unknown or empty sessions
succeeds silently.
*/
func TestService_Logout_Idempotent(t *testing.T) {
	service := auth.NewService(newFakePrincipalRepository(), newFakeSessionStore(), discardLogger())

	assert.NoError(t, service.Logout(context.Background(), "never-existed"))
	assert.NoError(t, service.Logout(context.Background(), ""))
}

// # Provisioning

/*
TestService_ProvisionInitialAdministrator verifies the bootstrap account is
forced to the top tier regardless of input.
*/
func TestService_ProvisionInitialAdministrator(t *testing.T) {
	repo := newFakePrincipalRepository()
	service := auth.NewService(repo, newFakeSessionStore(), discardLogger())

	principal, err := service.ProvisionInitialAdministrator(context.Background(), auth.ProvisionInput{
		Username: "root",
		Email:    "root@example.org",
		Password: "bootstrap-secret",
		PlanName: "Titular",
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleSuperAdmin, principal.Role)
	assert.True(t, principal.IsActive)
	assert.True(t, principal.IsApproved)
	assert.NotEmpty(t, principal.ID)

	// The stored hash verifies and is not the plaintext.
	require.Len(t, repo.created, 1)
	assert.NotEqual(t, "bootstrap-secret", repo.created[0].PasswordHash)
	assert.True(t, sec.VerifyPassword("bootstrap-secret", repo.created[0].PasswordHash))
}

/*
TestService_ProvisionInitialAdministrator_Conflict verifies provisioning an
existing username fails with a conflict.
*/
func TestService_ProvisionInitialAdministrator_Conflict(t *testing.T) {
	repo := newFakePrincipalRepository(activeMember(t, "root", "whatever"))
	service := auth.NewService(repo, newFakeSessionStore(), discardLogger())

	principal, err := service.ProvisionInitialAdministrator(context.Background(), auth.ProvisionInput{
		Username: "root",
		Email:    "root@example.org",
		Password: "bootstrap-secret",
	})

	assert.Nil(t, principal)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, 409, ae.HTTPStatus)
}

// # Member Directory

/*
TestService_ListMembers verifies pagination metadata is derived from the
repository's total count.
*/
func TestService_ListMembers(t *testing.T) {
	repo := newFakePrincipalRepository(
		activeMember(t, "alice", "a"),
		activeMember(t, "bob", "b"),
		activeMember(t, "carol", "c"),
	)
	service := auth.NewService(repo, newFakeSessionStore(), discardLogger())

	members, meta, err := service.ListMembers(context.Background(), pagination.Params{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.Len(t, members, 3)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 1, meta.TotalPages)
}
