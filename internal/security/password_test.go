package security

import (
	"bytes"
	"errors"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	ok, err := VerifyPassword("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if !ok {
		t.Fatal("expected matching password to verify")
	}
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("right-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	ok, err := VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if ok {
		t.Fatal("expected mismatching password to fail verification")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	_, err := VerifyPassword("anything", []byte("not-an-argon2-hash"))
	if err == nil {
		t.Fatal("expected error for malformed hash")
	}
	if !errors.Is(err, ErrInvalidHash) {
		t.Fatalf("expected ErrInvalidHash, got %v", err)
	}
}

func TestHashPassword_SaltIsRandom(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if bytes.Equal(first, second) {
		t.Fatal("expected distinct hashes for the same password")
	}
}

func TestHashPasswordWithParams_Roundtrip(t *testing.T) {
	t.Parallel()

	params := Argon2Params{
		Iterations: 1,
		Memory:     8 * 1024,
		Threads:    1,
		KeyLen:     16,
		SaltLen:    8,
	}

	hash, err := HashPasswordWithParams("cheap-test-cost", params)
	if err != nil {
		t.Fatalf("HashPasswordWithParams error: %v", err)
	}

	ok, err := VerifyPassword("cheap-test-cost", hash)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if !ok {
		t.Fatal("expected hash with custom params to verify")
	}
}
