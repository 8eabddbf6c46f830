// Copyright (c) 2026 Sodalis. All rights reserved.

/*
Package gate implements the access-gate state machine for protected areas.

On every protected navigation it combines identity presence, the route's role
requirement, and the membership-approval business rule into a single decision:
render, redirect to login, redirect to the pending-approval page, deny, or
defer while data is still loading.

Architecture:

  - Evaluate: Pure transition function over a Snapshot of both data sources.
  - Gate: Stateful wrapper owning the one-shot navigation side effect.
  - Repository: Read access to membership applications (Postgres).

The pure decision and the navigation side effect are deliberately separated
so each can be tested on its own.
*/
package gate

import (
	"github.com/sodalis/api/internal/platform/constants"
	"github.com/sodalis/api/internal/users/auth"
)

// # States

// State is the outcome class of one access-gate evaluation.
type State string

const (
	StateLoading         State = "loading"
	StateUnauthenticated State = "unauthenticated"
	StatePendingApproval State = "pending_approval"
	StateDenied          State = "denied"
	StateAuthorized      State = "authorized"
)

// # Inputs & Outputs

// Snapshot captures everything one evaluation needs: the two independently
// loading data sources, the route's requirement, and where the caller is.
type Snapshot struct {
	// IdentityLoading is true while the session principal is being resolved.
	IdentityLoading bool

	// Member is the resolved member record, nil when unauthenticated.
	Member *auth.Principal

	// ApplicationLoading is true while the application lookup is in flight.
	ApplicationLoading bool

	// Application is the member's most recent application, nil when none exists.
	Application *Application

	// RequiresElevated marks routes reserved for the top administrative tier.
	RequiresElevated bool

	// CurrentPath is the navigation path the caller is currently on.
	CurrentPath string
}

// Outcome is the decision produced by one evaluation.
//
// RedirectTo is empty for in-place outcomes (Loading, Denied, Authorized) and
// for redirect outcomes whose target equals the current path.
type Outcome struct {
	State      State  `json:"state"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

// # Transition Function

/*
Evaluate runs the access-gate transition function over one input snapshot.

Description: Pure and side-effect free. The decision order is fixed: loading
checks first, then authentication, then the role requirement, then the
membership-approval rule. An unapproved profile and a pending application
each gate on their own; either one is sufficient to redirect. Elevated routes
never wait on the application lookup, since approval status is irrelevant to
administrative areas.

Parameters:
  - snapshot: Snapshot

Returns:
  - Outcome: Decision plus an optional redirect target
*/
func Evaluate(snapshot Snapshot) Outcome {

	// 1. Defer while required data is still loading. The application lookup
	//    only matters for member areas, never for elevated routes.
	if snapshot.IdentityLoading {
		return Outcome{State: StateLoading}
	}
	if !snapshot.RequiresElevated && snapshot.ApplicationLoading {
		return Outcome{State: StateLoading}
	}

	// 2. No identity at all: send the caller to the login page.
	if snapshot.Member == nil {
		return Outcome{
			State:      StateUnauthenticated,
			RedirectTo: redirectUnless(snapshot.CurrentPath, constants.LoginPath),
		}
	}

	// 3. Elevated routes deny in place when the role is insufficient. No
	//    redirect: the caller stays where they are and sees the denial.
	if snapshot.RequiresElevated {
		if !snapshot.Member.IsElevated() {
			return Outcome{State: StateDenied}
		}
		return Outcome{State: StateAuthorized}
	}

	// 4a. Profile not fully approved: gate to the pending-approval page.
	if !snapshot.Member.FullyApproved() {
		return Outcome{
			State:      StatePendingApproval,
			RedirectTo: redirectUnless(snapshot.CurrentPath, constants.PendingApprovalPath),
		}
	}

	// 4b. A lingering pending application gates too, even when the profile
	//     already looks approved.
	if snapshot.Application.IsPending() {
		return Outcome{
			State:      StatePendingApproval,
			RedirectTo: redirectUnless(snapshot.CurrentPath, constants.PendingApprovalPath),
		}
	}

	// 4c. Fully approved member on a member route.
	return Outcome{State: StateAuthorized}
}

// redirectUnless returns target, or empty when the caller is already there.
func redirectUnless(currentPath, target string) string {
	if currentPath == target {
		return ""
	}
	return target
}

// # Stateful Gate

// Navigator receives the one-shot navigation side effect of a redirecting
// outcome. Implementations perform the actual path change.
type Navigator func(path string)

// Gate wraps Evaluate with the navigation side effect and refresh smoothing.
//
// # Idempotence
//
// Re-evaluating the same inputs never re-fires navigation: a redirect is
// dispatched only when the (state, target) pair differs from the previous
// evaluation. During a background refresh the gate keeps reporting its last
// settled outcome instead of flickering back to Loading.
type Gate struct {
	navigate Navigator

	last     Outcome
	lastPath string
	settled  bool
}

// New constructs a [Gate] dispatching redirects through the given navigator.
func New(navigate Navigator) *Gate {
	return &Gate{navigate: navigate}
}

/*
Apply evaluates one snapshot, fires at most one navigation, and returns the
outcome the caller should render.

Description: A Loading result after the gate has already settled is treated
as a background refresh; the previous outcome is returned unchanged and no
navigation fires. Redirect targets equal to the snapshot's current path are
suppressed, so landing on the pending-approval page while unapproved renders
without a redundant redirect.

Parameters:
  - snapshot: Snapshot

Returns:
  - Outcome: Decision to render
*/
func (gate *Gate) Apply(snapshot Snapshot) Outcome {
	outcome := Evaluate(snapshot)

	// Preserve the last settled state while a refresh is in flight.
	if outcome.State == StateLoading {
		if gate.settled {
			return gate.last
		}
		return outcome
	}

	// Fire navigation only when the decision actually changed.
	if outcome.RedirectTo != "" {
		changed := !gate.settled || gate.last.State != outcome.State || gate.lastPath != outcome.RedirectTo
		if changed && gate.navigate != nil {
			gate.navigate(outcome.RedirectTo)
		}
		gate.lastPath = outcome.RedirectTo
	} else {
		gate.lastPath = ""
	}

	gate.last = outcome
	gate.settled = true
	return outcome
}

// Reset clears the gate's memory, typically after an explicit logout.
func (gate *Gate) Reset() {
	gate.last = Outcome{}
	gate.lastPath = ""
	gate.settled = false
}
