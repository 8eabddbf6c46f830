// Copyright (c) 2026 Sodalis. All rights reserved.

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sodalis/api/internal/platform/constants"
	"github.com/sodalis/api/internal/platform/sec"
)

// # Session Store

// RedisSessionStore implements SessionStore using Redis.
//
// Each session is a JSON-encoded sec.SessionPrincipal stored under an opaque
// random identifier with a sliding expiry equal to SessionTTL.
type RedisSessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new Redis-backed SessionStore.
func NewSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

/*
Create persists the principal under a freshly generated session identifier.

Parameters:
  - context: context.Context
  - principal: *sec.SessionPrincipal

Returns:
  - string: Opaque session identifier handed to the client
  - error: Identifier generation or storage failures
*/
func (store *RedisSessionStore) Create(context context.Context, principal *sec.SessionPrincipal) (string, error) {

	// 1. Generate an unguessable session identifier
	sessionID, err := newSessionID()
	if err != nil {
		return "", fmt.Errorf("redis_session_id_generation_failed: %w", err)
	}

	// 2. Encode the principal as JSON
	payload, err := json.Marshal(principal)
	if err != nil {
		return "", fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	// 3. Store with TTL
	key := constants.RedisPrefixSession + sessionID
	if err := store.client.Set(context, key, payload, SessionTTL).Err(); err != nil {
		return "", fmt.Errorf("redis_session_set_failed: %w", err)
	}

	// Return the identifier on success
	return sessionID, nil
}

/*
Get resolves a session identifier back to its principal.

Description: Returns ErrSessionNotFound if the session is absent or has
expired. A successfully resolved principal always carries a true
authentication marker, since only authenticated principals are ever stored.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - *sec.SessionPrincipal: Resolved principal
  - error: ErrSessionNotFound or connectivity errors
*/
func (store *RedisSessionStore) Get(context context.Context, sessionID string) (*sec.SessionPrincipal, error) {

	// Fetch the session payload
	key := constants.RedisPrefixSession + sessionID
	payload, err := store.client.Get(context, key).Bytes()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	// Decode the principal
	principal := &sec.SessionPrincipal{}
	if err := json.Unmarshal(payload, principal); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}

	// Return the principal
	return principal, nil
}

/*
Destroy removes a session. Destroying an absent session is not an error.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - error: Deletion failures
*/
func (store *RedisSessionStore) Destroy(context context.Context, sessionID string) error {

	// Delete the session key
	key := constants.RedisPrefixSession + sessionID
	if err := store.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	// Return nil on success
	return nil
}

// newSessionID returns a hex-encoded random identifier of SessionIDLength bytes.
func newSessionID() (string, error) {
	buffer := make([]byte, SessionIDLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", err
	}
	return hex.EncodeToString(buffer), nil
}
