// Copyright (c) 2026 Sodalis. All rights reserved.

package gate

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresApplicationRepository implements ApplicationRepository using pgx.
type PostgresApplicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository creates a new PostgreSQL implementation of the ApplicationRepository.
func NewApplicationRepository(pool *pgxpool.Pool) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{pool: pool}
}

/*
FindByUserID returns the most recent application filed by the user.

Description: A user without any application yields (nil, nil), since absence
is a perfectly normal state for long-standing members.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Application: Most recent application, or nil
  - error: Database retrieval failures
*/
func (repository *PostgresApplicationRepository) FindByUserID(context context.Context, userID string) (*Application, error) {
	const query = `
		SELECT id, userid, status, createdat, updatedat
		FROM members.application
		WHERE userid = $1
		ORDER BY createdat DESC
		LIMIT 1`

	application := &Application{}
	err := repository.pool.QueryRow(context, query, userID).Scan(
		&application.ID,
		&application.UserID,
		&application.Status,
		&application.CreatedAt,
		&application.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres_application_repo_find_failed: %w", err)
	}

	return application, nil
}
