// Copyright (c) 2026 Sodalis. All rights reserved.

package gate

import (
	"context"
	"errors"
	"fmt"

	"github.com/sodalis/api/internal/platform/sec"
	"github.com/sodalis/api/internal/users/auth"
)

// PrincipalReader is the slice of the member repository this service needs.
//
// Declaring it here keeps the gate decoupled from the full auth storage
// contract and lets tests inject a minimal fake.
type PrincipalReader interface {
	FindByID(ctx context.Context, id string) (*auth.Principal, error)
}

// Service assembles access-gate snapshots on behalf of HTTP callers.
//
// The browser runs the same transition function locally against its cached
// queries; this service is the authoritative server-side evaluation, loading
// the member record and application state fresh on every call.
type Service struct {
	principalRepository   PrincipalReader
	applicationRepository ApplicationRepository
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(principalRepo PrincipalReader, applicationRepo ApplicationRepository) *Service {
	return &Service{
		principalRepository:   principalRepo,
		applicationRepository: applicationRepo,
	}
}

/*
EvaluateFor computes the access decision for one caller and route.

Description: Loads the member record and, for non-elevated routes, the most
recent application, then runs the pure transition function over the snapshot.
A session pointing at a deleted account evaluates as unauthenticated rather
than erroring, since the caller can do nothing but log in again.

Parameters:
  - context: context.Context
  - principal: *sec.SessionPrincipal (nil for anonymous callers)
  - requiresElevated: bool
  - currentPath: string

Returns:
  - Outcome: Access decision
  - error: Storage failures
*/
func (service *Service) EvaluateFor(context context.Context, principal *sec.SessionPrincipal, requiresElevated bool, currentPath string) (Outcome, error) {
	snapshot := Snapshot{
		RequiresElevated: requiresElevated,
		CurrentPath:      currentPath,
	}

	// Resolve the full member record when a session is present. The session
	// projection alone cannot answer the approval rule.
	if principal != nil && principal.IsAuthenticated {
		member, err := service.principalRepository.FindByID(context, principal.UserID)
		if err != nil {
			if !errors.Is(err, auth.ErrNotFound) {
				return Outcome{}, fmt.Errorf("gate_service_member_lookup_failed: %w", err)
			}
			// Stale session: fall through with a nil member.
		} else {
			snapshot.Member = member
		}
	}

	// The application lookup only matters for member areas.
	if snapshot.Member != nil && !requiresElevated {
		application, err := service.applicationRepository.FindByUserID(context, snapshot.Member.ID)
		if err != nil {
			return Outcome{}, fmt.Errorf("gate_service_application_lookup_failed: %w", err)
		}
		snapshot.Application = application
	}

	return Evaluate(snapshot), nil
}
