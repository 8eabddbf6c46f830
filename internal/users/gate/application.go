// Copyright (c) 2026 Sodalis. All rights reserved.

package gate

import (
	"context"
	"time"
)

// # Membership Applications

// ApplicationStatus enumerates the lifecycle of a membership application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// Application is a membership application filed by a prospective member.
//
// A pending application gates access even when the member's profile already
// looks approved, covering the window before the approval flag propagates.
type Application struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// IsPending reports whether the application is still awaiting review.
func (a *Application) IsPending() bool {
	return a != nil && a.Status == StatusPending
}

// ApplicationRepository defines read access to membership applications.
type ApplicationRepository interface {
	/*
		FindByUserID returns the most recent application filed by the user.

		Description: Returns (nil, nil) when the user has never filed an
		application. Absence is a normal state, not an error.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - *Application: Most recent application, or nil
		  - error: Storage failures
	*/
	FindByUserID(context context.Context, userID string) (*Application, error)
}
