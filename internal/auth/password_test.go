// Copyright (c) 2026 ZewedJobs
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash = %q, want argon2id encoding", hash)
	}
	if !IsHashed(hash) {
		t.Error("IsHashed(hash) = false")
	}

	// Hashing is salted, so two hashes of the same input differ.
	again, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == again {
		t.Error("two hashes of the same password are identical")
	}
}

func TestVerifyPassword_Hashed(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	ok, err := VerifyPassword("correct horse", hash)
	if err != nil || !ok {
		t.Errorf("VerifyPassword(correct) = %v, %v", ok, err)
	}
	ok, err = VerifyPassword("wrong", hash)
	if err != nil || ok {
		t.Errorf("VerifyPassword(wrong) = %v, %v", ok, err)
	}
}

func TestVerifyPassword_LegacyPlaintext(t *testing.T) {
	// Seeded legacy datasets store the password as-is.
	ok, err := VerifyPassword("admin123", "admin123")
	if err != nil || !ok {
		t.Errorf("plaintext match = %v, %v", ok, err)
	}
	ok, err = VerifyPassword("admin124", "admin123")
	if err != nil || ok {
		t.Errorf("plaintext mismatch = %v, %v", ok, err)
	}
}

func TestIsHashed(t *testing.T) {
	if IsHashed("admin123") {
		t.Error("IsHashed(plaintext) = true")
	}
	if !IsHashed("$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA") {
		t.Error("IsHashed(encoded) = false")
	}
}

func TestVerifyArgon2_MalformedHash(t *testing.T) {
	if _, err := VerifyPassword("x", "$argon2id$broken"); err == nil {
		t.Error("malformed hash verified without error")
	}
}
