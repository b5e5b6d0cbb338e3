// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth provides credential verification. Stored credentials are
// either argon2id-encoded hashes or, for datasets seeded and migrated from
// the legacy panel, plaintext compared byte-for-byte. The plaintext path is
// a known defect of the legacy data, kept for compatibility; new hashes use
// argon2id.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2 parameters (OWASP recommended second choice: m=19456, t=2, p=1)
const (
	Argon2Time    = 2
	Argon2Memory  = 19 * 1024
	Argon2Threads = 1
	Argon2KeyLen  = 32
	Argon2SaltLen = 16
)

// argon2Prefix marks an encoded argon2id hash.
const argon2Prefix = "$argon2id$"

// IsHashed reports whether a stored credential is an argon2id hash rather
// than a legacy plaintext password.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, argon2Prefix)
}

// VerifyPassword checks input against the stored credential. Hashed
// credentials are verified with argon2id; legacy plaintext credentials are
// compared in constant time.
func VerifyPassword(input, stored string) (bool, error) {
	if IsHashed(stored) {
		return verifyArgon2(input, stored)
	}
	return subtle.ConstantTimeCompare([]byte(input), []byte(stored)) == 1, nil
}

// HashPassword creates an argon2id hash of the password.
// Returns encoded hash in format: $argon2id$v=19$m=19456,t=2,p=1$salt$hash
func HashPassword(password string) (string, error) {
	salt := make([]byte, Argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, Argon2Time, Argon2Memory, Argon2Threads, Argon2KeyLen)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, Argon2Memory, Argon2Time, Argon2Threads, b64Salt, b64Hash), nil
}

// verifyArgon2 verifies an input string against an argon2id hash.
// Uses constant-time comparison to prevent timing attacks.
func verifyArgon2(input, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("invalid hash format")
	}

	if parts[1] != "argon2id" {
		return false, fmt.Errorf("unsupported hash type: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("parsing version: %w", err)
	}

	var memory, timeCost uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &timeCost, &threads); err != nil {
		return false, fmt.Errorf("parsing parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("decoding salt: %w", err)
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("decoding hash: %w", err)
	}

	hash := argon2.IDKey([]byte(input), salt, timeCost, memory, threads, uint32(len(expectedHash)))
	return subtle.ConstantTimeCompare(hash, expectedHash) == 1, nil
}
