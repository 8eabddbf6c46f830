// Copyright (c) 2026 Sodalis. All rights reserved.

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sodalis/api/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies that every hashed plaintext verifies
against its own hash.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext string
	}{
		{"simple", "correct horse battery staple"},
		{"empty", ""},
		{"unicode", "sócio-júnior-ção"},
		{"long", strings.Repeat("x", 512)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored, err := sec.HashPassword(tt.plaintext)
			require.NoError(t, err)
			assert.True(t, sec.VerifyPassword(tt.plaintext, stored))
		})
	}
}

/*
TestHashPassword_Format checks the self-describing salt:key layout of the
stored value.
*/
func TestHashPassword_Format(t *testing.T) {
	stored, err := sec.HashPassword("secret")
	require.NoError(t, err)

	salt, key, found := strings.Cut(stored, ":")
	require.True(t, found)

	// 16-byte salt and 64-byte key, both hex encoded
	assert.Len(t, salt, 32)
	assert.Len(t, key, 128)
}

/*
TestHashPassword_SaltUniqueness verifies that hashing the same plaintext
twice produces two different stored values that both verify.
*/
func TestHashPassword_SaltUniqueness(t *testing.T) {
	first, err := sec.HashPassword("same password")
	require.NoError(t, err)

	second, err := sec.HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, sec.VerifyPassword("same password", first))
	assert.True(t, sec.VerifyPassword("same password", second))
}

/*
TestVerifyPassword_WrongPlaintext checks that a mismatched plaintext never
verifies.
*/
func TestVerifyPassword_WrongPlaintext(t *testing.T) {
	stored, err := sec.HashPassword("right")
	require.NoError(t, err)

	assert.False(t, sec.VerifyPassword("wrong", stored))
	assert.False(t, sec.VerifyPassword("", stored))
}

/*
TestVerifyPassword_Malformed checks that malformed stored values fail closed
without panicking.
*/
func TestVerifyPassword_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{"empty", ""},
		{"missing_separator", "deadbeefdeadbeef"},
		{"non_hex_salt", "zzzz:00ff"},
		{"non_hex_key", "00ff:zzzz"},
		{"separator_only", ":"},
		{"trailing_garbage", "00ff:00ff:extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, sec.VerifyPassword("anything", tt.stored))
		})
	}
}
