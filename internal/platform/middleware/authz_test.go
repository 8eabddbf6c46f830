// Copyright (c) 2026 Sodalis. All rights reserved.

package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sodalis/api/internal/platform/constants"
	"github.com/sodalis/api/internal/platform/middleware"
	"github.com/sodalis/api/internal/platform/sec"
)

// # Test Fakes

type fakeSessionReader struct {
	sessions map[string]*sec.SessionPrincipal
}

func (r *fakeSessionReader) Get(_ context.Context, sessionID string) (*sec.SessionPrincipal, error) {
	p, ok := r.sessions[sessionID]
	if !ok {
		return nil, assert.AnError
	}
	return p, nil
}

// buildChain wires LoadSession plus the given guard in router order around a
// probe handler that records whether it was reached.
func buildChain(reader middleware.SessionReader, guard func(http.Handler) http.Handler, reached *bool) http.Handler {
	probe := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*reached = true
		writer.WriteHeader(http.StatusOK)
	})
	return middleware.LoadSession(reader)(guard(probe))
}

type denialBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func decodeDenial(t *testing.T, recorder *httptest.ResponseRecorder) denialBody {
	t.Helper()
	var body denialBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

// # RequireAuthenticated

/*
TestRequireAuthenticated_Middleware covers the full cookie-to-denial contract
of the authentication guard.
*/
func TestRequireAuthenticated_Middleware(t *testing.T) {
	reader := &fakeSessionReader{sessions: map[string]*sec.SessionPrincipal{
		"good": {UserID: "u1", Username: "alice", Role: sec.RoleUser, IsAuthenticated: true},
		"bare": {UserID: "u1", Username: "alice", Role: sec.RoleUser},
	}}

	tests := []struct {
		name           string
		sessionID      string
		expectedStatus int
		expectReached  bool
	}{
		{"no_cookie", "", http.StatusUnauthorized, false},
		{"dead_session", "expired", http.StatusUnauthorized, false},
		{"marker_false", "bare", http.StatusUnauthorized, false},
		{"marker_true", "good", http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			chain := buildChain(reader, middleware.RequireAuthenticated, &reached)

			request := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.sessionID != "" {
				request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: tt.sessionID})
			}

			recorder := httptest.NewRecorder()
			chain.ServeHTTP(recorder, request)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
			assert.Equal(t, tt.expectReached, reached)

			if !tt.expectReached {
				body := decodeDenial(t, recorder)
				assert.False(t, body.Success)
				assert.Equal(t, sec.MessageAuthenticationRequired, body.Message)
			}
		})
	}
}

// # RequireElevated

/*
TestRequireElevated_Middleware covers the elevated guard including the
401-before-403 ordering for anonymous callers.
*/
func TestRequireElevated_Middleware(t *testing.T) {
	reader := &fakeSessionReader{sessions: map[string]*sec.SessionPrincipal{
		"user":  {UserID: "u1", Role: sec.RoleUser, IsAuthenticated: true},
		"admin": {UserID: "u2", Role: sec.RoleAdmin, IsAuthenticated: true},
		"super": {UserID: "u3", Role: sec.RoleSuperAdmin, IsAuthenticated: true},
	}}

	tests := []struct {
		name            string
		sessionID       string
		expectedStatus  int
		expectedMessage string
		expectReached   bool
	}{
		// Anonymous probing of an admin route must look exactly like any
		// other unauthenticated request.
		{"no_cookie", "", http.StatusUnauthorized, sec.MessageAuthenticationRequired, false},
		{"role_user", "user", http.StatusForbidden, sec.MessageElevatedRequired, false},
		{"role_admin", "admin", http.StatusForbidden, sec.MessageElevatedRequired, false},
		{"role_super_admin", "super", http.StatusOK, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			chain := buildChain(reader, middleware.RequireElevated, &reached)

			request := httptest.NewRequest(http.MethodGet, "/admin/members", nil)
			if tt.sessionID != "" {
				request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: tt.sessionID})
			}

			recorder := httptest.NewRecorder()
			chain.ServeHTTP(recorder, request)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
			assert.Equal(t, tt.expectReached, reached)

			if !tt.expectReached {
				body := decodeDenial(t, recorder)
				assert.False(t, body.Success)
				assert.Equal(t, tt.expectedMessage, body.Message)
			}
		})
	}
}
