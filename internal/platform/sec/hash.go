// Copyright (c) 2026 Sodalis. All rights reserved.

/*
Package sec provides the security primitives of the platform: the credential
codec, the role hierarchy, the session principal shape, and the pure
authorization guard predicates.

# Architecture

This package isolates security-sensitive code from domain logic. It has no
storage or transport dependencies, so every rule in it is testable in
isolation and reusable by both the HTTP middleware and the access gate.
*/
package sec

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// # Credential Codec

// Fixed derivation parameters. Changing any of these invalidates every stored
// hash, so they are deliberately not configurable.
const (
	// saltLength is the byte length of the random salt, regenerated on every hash.
	saltLength = 16

	// scryptN is the scrypt CPU/memory cost parameter.
	scryptN = 1 << 14

	// scryptR is the scrypt block size parameter.
	scryptR = 8

	// scryptP is the scrypt parallelization parameter.
	scryptP = 1

	// derivedKeyLength is the byte length of the derived key.
	derivedKeyLength = 64

	// hashSeparator joins the hex-encoded salt and derived key into one
	// self-describing opaque string.
	hashSeparator = ":"
)

// HashPassword hashes a plain-text password using scrypt with a fresh random salt.
//
// # Format
//
// The returned value is "hex(salt):hex(derivedKey)". The salt travels with
// the hash, so verification never needs external parameters. Two calls with
// the same password produce different outputs because the salt is never reused.
//
// A password of any length (including empty) is defined input; minimum-length
// policy belongs to the registration validator, not this layer.
//
// # Concurrency
//
// Derivation is intentionally expensive. It runs entirely in the calling
// goroutine, so concurrent logins never block each other beyond normal
// scheduler contention.
func HashPassword(plainTextPassword string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("sec: failed to generate salt: %w", err)
	}

	derivedKey, err := scrypt.Key([]byte(plainTextPassword), salt, scryptN, scryptR, scryptP, derivedKeyLength)
	if err != nil {
		return "", fmt.Errorf("sec: failed to derive key: %w", err)
	}

	return hex.EncodeToString(salt) + hashSeparator + hex.EncodeToString(derivedKey), nil
}

// VerifyPassword compares a plain-text password against a stored hash.
//
// # Failure Semantics
//
// A malformed stored value (missing separator, non-hex payload) yields false;
// it never returns an error and never panics. The final comparison uses
// [subtle.ConstantTimeCompare] so the result does not leak where a mismatch
// occurs.
func VerifyPassword(plainTextPassword, stored string) bool {
	saltHex, keyHex, found := strings.Cut(stored, hashSeparator)
	if !found {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}

	expectedKey, err := hex.DecodeString(keyHex)
	if err != nil {
		return false
	}

	// Re-derive with identical parameters. ConstantTimeCompare returns 0 for
	// differing lengths, which also covers truncated stored keys.
	derivedKey, err := scrypt.Key([]byte(plainTextPassword), salt, scryptN, scryptR, scryptP, derivedKeyLength)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(derivedKey, expectedKey) == 1
}
