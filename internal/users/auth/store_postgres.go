// Copyright (c) 2026 Sodalis. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// # Principal Repository

// PostgresPrincipalRepository implements the PrincipalRepository interface using pgx.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-level
// sentinels so callers never see storage implementation details.
type PostgresPrincipalRepository struct {
	pool *pgxpool.Pool
}

// NewPrincipalRepository creates a new PostgreSQL implementation of the PrincipalRepository.
func NewPrincipalRepository(pool *pgxpool.Pool) *PostgresPrincipalRepository {
	return &PostgresPrincipalRepository{pool: pool}
}

// principalColumns is the canonical SELECT column list shared by every lookup.
const principalColumns = `
	id, username, email, passwordhash, displayname, role,
	isactive, isapproved, planname, lastloginat, createdat, updatedat`

/*
FindByUsername retrieves a member record by exact username.

Description: Case-sensitive lookup used by the identity resolver. No
normalization is applied by design.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *Principal: Hydrated account entity
  - error: ErrNotFound or database errors
*/
func (repository *PostgresPrincipalRepository) FindByUsername(context context.Context, username string) (*Principal, error) {
	const query = `
		SELECT ` + principalColumns + `
		FROM members.account
		WHERE username = $1`

	return repository.scanOne(repository.pool.QueryRow(context, query, username), "find_by_username")
}

/*
FindByID retrieves a member record by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Principal: Hydrated account entity
  - error: ErrNotFound or database errors
*/
func (repository *PostgresPrincipalRepository) FindByID(context context.Context, id string) (*Principal, error) {
	const query = `
		SELECT ` + principalColumns + `
		FROM members.account
		WHERE id = $1`

	return repository.scanOne(repository.pool.QueryRow(context, query, id), "find_by_id")
}

/*
UpdateLastLogin stamps the account's last-authenticated time.

Description: Single-column update; racing logins overwrite each other with
last-write-wins semantics, acceptable for an informational field.

Parameters:
  - context: context.Context
  - id: string
  - authenticatedAt: time.Time

Returns:
  - error: Persistence failures
*/
func (repository *PostgresPrincipalRepository) UpdateLastLogin(context context.Context, id string, authenticatedAt time.Time) error {
	const query = `
		UPDATE members.account
		SET lastloginat = $2, updatedat = $2
		WHERE id = $1`

	if _, err := repository.pool.Exec(context, query, id, authenticatedAt); err != nil {
		return fmt.Errorf("postgres_principal_repo_update_last_login_failed: %w", err)
	}

	return nil
}

/*
CreateAdministrator persists a bootstrap administrator account.

Parameters:
  - context: context.Context
  - principal: *Principal

Returns:
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresPrincipalRepository) CreateAdministrator(context context.Context, principal *Principal) error {
	const query = `
		INSERT INTO members.account (
			id, username, email, passwordhash, displayname, role,
			isactive, isapproved, planname, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	now := time.Now()
	if principal.CreatedAt.IsZero() {
		principal.CreatedAt = now
	}
	principal.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		principal.ID,
		principal.Username,
		principal.Email,
		principal.PasswordHash,
		principal.DisplayName,
		principal.Role,
		principal.IsActive,
		principal.IsApproved,
		principal.PlanName,
		principal.CreatedAt,
		principal.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_principal_repo_create_admin_failed: %w", err)
	}

	return nil
}

/*
List returns one page of member accounts plus the total count.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Principal: Page ordered by creation time (newest first)
  - int: Total number of accounts
  - error: Database retrieval failures
*/
func (repository *PostgresPrincipalRepository) List(context context.Context, limit, offset int) ([]*Principal, int, error) {
	const countQuery = `SELECT COUNT(*) FROM members.account`

	var total int
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_principal_repo_count_failed: %w", err)
	}

	const query = `
		SELECT ` + principalColumns + `
		FROM members.account
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_principal_repo_list_failed: %w", err)
	}
	defer rows.Close()

	principals := make([]*Principal, 0, limit)
	for rows.Next() {
		principal := &Principal{}
		if err := scanPrincipal(rows, principal); err != nil {
			return nil, 0, fmt.Errorf("postgres_principal_repo_list_scan_failed: %w", err)
		}
		principals = append(principals, principal)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_principal_repo_list_rows_failed: %w", err)
	}

	return principals, total, nil
}

// scanOne hydrates a single principal row, mapping pgx.ErrNoRows to ErrNotFound.
func (repository *PostgresPrincipalRepository) scanOne(row pgx.Row, operation string) (*Principal, error) {
	principal := &Principal{}
	if err := scanPrincipal(row, principal); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("postgres_principal_repo_%s_failed: %w", operation, err)
	}
	return principal, nil
}

// scanPrincipal reads the canonical column list into a Principal.
func scanPrincipal(row pgx.Row, principal *Principal) error {
	return row.Scan(
		&principal.ID,
		&principal.Username,
		&principal.Email,
		&principal.PasswordHash,
		&principal.DisplayName,
		&principal.Role,
		&principal.IsActive,
		&principal.IsApproved,
		&principal.PlanName,
		&principal.LastLoginAt,
		&principal.CreatedAt,
		&principal.UpdatedAt,
	)
}
