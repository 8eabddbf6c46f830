// Copyright (c) 2026 Sodalis. All rights reserved.

/*
Package auth implements the membership identity core.

It covers credential verification, session lifecycle, and administrator
provisioning for the association platform.

Architecture:

  - Service: Orchestrates business logic (Authenticate, Login, Provision).
  - Repository: Abstracted interfaces for Postgres (Members) and Redis (Sessions).
  - Security: Delegates credential hashing and comparison to the sec package.

The package ensures identity data remains consistent and that authentication
failures never leak whether an account exists.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sodalis/api/internal/platform/apperr"
	"github.com/sodalis/api/internal/platform/sec"
	"github.com/sodalis/api/pkg/pagination"
	"github.com/sodalis/api/pkg/uuid"
)

// Service implements membership authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing or login
// logic must be reviewed by the security team.
type Service struct {
	principalRepository PrincipalRepository
	sessionStore        SessionStore
	logger              *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(principalRepo PrincipalRepository, sessionStore SessionStore, logger *slog.Logger) *Service {
	return &Service{
		principalRepository: principalRepo,
		sessionStore:        sessionStore,
		logger:              logger,
	}
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

// LoginSession represents a successfully established member session.
type LoginSession struct {
	SessionID string
	ExpiresAt time.Time
	Principal *Principal
}

/*
Authenticate resolves a username/password pair to a full member record.

Description: Every rejection path (unknown username, deactivated account,
wrong password) returns the identical Unauthorized error so callers cannot
distinguish which check failed. Storage failures are wrapped and propagated
as-is, since they indicate infrastructure trouble rather than bad credentials.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - *Principal: Authenticated member entity
  - error: Unauthorized or internal failures
*/
func (service *Service) Authenticate(context context.Context, username, password string) (*Principal, error) {

	// 1. Look up the account by exact username
	principal, err := service.principalRepository.FindByUsername(context, username)
	if err != nil {
		// Unknown username collapses to the generic rejection. Anything else
		// is a storage fault and must not masquerade as bad credentials.
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.Unauthorized(MessageAuthenticationFailed)
		}
		return nil, fmt.Errorf("auth_service_lookup_failed: %w", err)
	}

	// 2. Deactivated accounts are rejected with the same generic message
	if !principal.IsActive {
		return nil, apperr.Unauthorized(MessageAuthenticationFailed)
	}

	// 3. Constant-time credential comparison
	if !sec.VerifyPassword(password, principal.PasswordHash) {
		return nil, apperr.Unauthorized(MessageAuthenticationFailed)
	}

	// 4. Stamp the last login as a best-effort side effect. A failure here
	//    must never turn a correct credential check into a login failure.
	now := time.Now()
	if err := service.principalRepository.UpdateLastLogin(context, principal.ID, now); err != nil {
		service.logger.Warn("last login update failed",
			slog.String("user_id", principal.ID),
			slog.Any("error", err))
	} else {
		principal.LastLoginAt = &now
	}

	return principal, nil
}

/*
Login authenticates credentials and establishes a server-side session.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Session identifier plus the resolved member
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {

	// Resolve the credentials to a member record
	principal, err := service.Authenticate(context, input.Username, input.Password)
	if err != nil {
		return nil, err
	}

	// Persist the session principal in Redis
	sessionID, err := service.sessionStore.Create(context, principal.SessionView())
	if err != nil {
		return nil, fmt.Errorf("auth_service_session_create_failed: %w", err)
	}

	return &LoginSession{
		SessionID: sessionID,
		ExpiresAt: time.Now().Add(SessionTTL),
		Principal: principal,
	}, nil
}

/*
Logout destroys the session identified by sessionID.

Description: Idempotent. Logging out an already-expired or unknown session
succeeds silently.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - error: Connectivity failures only
*/
func (service *Service) Logout(context context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := service.sessionStore.Destroy(context, sessionID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

/*
Profile retrieves the full member record for an authenticated user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Principal: Member entity
  - error: ErrNotFound or storage errors
*/
func (service *Service) Profile(context context.Context, userID string) (*Principal, error) {
	principal, err := service.principalRepository.FindByID(context, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_profile_failed: %w", err)
	}
	return principal, nil
}

// # Administrator Provisioning

// ProvisionInput holds the data required to bootstrap an administrator account.
type ProvisionInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	PlanName    string
}

/*
ProvisionInitialAdministrator creates the bootstrap administrator account.

Description: The created account is always a super administrator, active and
approved, regardless of what the caller supplies. This is the only code path
that mints super_admin accounts.

Parameters:
  - context: context.Context
  - input: ProvisionInput

Returns:
  - *Principal: Created administrator entity
  - error: Conflict (if the username exists) or storage errors
*/
func (service *Service) ProvisionInitialAdministrator(context context.Context, input ProvisionInput) (*Principal, error) {

	// Verify username uniqueness. Return a client-safe Conflict error.
	_, err := service.principalRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("auth_service_provision_lookup_failed: %w", err)
	}

	// Prevent storing plain-text passwords
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the administrator. Role, activation and approval are forced;
	// caller input cannot downgrade any of them.
	principal := &Principal{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  input.DisplayName,
		Role:         sec.RoleSuperAdmin,
		IsActive:     true,
		IsApproved:   true,
		PlanName:     input.PlanName,
	}

	// Persist the administrator
	if err := service.principalRepository.CreateAdministrator(context, principal); err != nil {
		return nil, fmt.Errorf("auth_service_provision_failed: %w", err)
	}

	service.logger.Info("initial administrator provisioned",
		slog.String("user_id", principal.ID),
		slog.String("username", principal.Username))

	return principal, nil
}

// # Member Directory

/*
ListMembers returns one page of member accounts for administrative review.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []*Principal: Page of members
  - pagination.Meta: Paging metadata
  - error: Storage failures
*/
func (service *Service) ListMembers(context context.Context, params pagination.Params) ([]*Principal, pagination.Meta, error) {
	principals, total, err := service.principalRepository.List(context, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("auth_service_list_members_failed: %w", err)
	}
	meta := pagination.NewMeta(params.Page, params.Limit, total)
	return principals, meta, nil
}
