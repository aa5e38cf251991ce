package security

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParseSessionToken(t *testing.T) {
	t.Parallel()

	secret := "super-secret"

	tok, err := GenerateSessionToken(secret, "alice", "free", 30*time.Minute)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}

	claims, err := ParseSessionToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseSessionToken error: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("subject mismatch: got %q want %q", claims.Subject, "alice")
	}
	if claims.Role != "free" {
		t.Fatalf("role mismatch: got %q want %q", claims.Role, "free")
	}
	if !claims.ExpiresAt.After(time.Now().Add(29 * time.Minute)) {
		t.Fatalf("expiry too early: %v", claims.ExpiresAt)
	}
}

func TestParseSessionToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := GenerateSessionToken("secret", "bob", "premium", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}

	_, err = ParseSessionToken(tok, "secret")
	if err == nil {
		t.Fatal("expected error for expired token")
	}
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseSessionToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateSessionToken("right-secret", "carol", "free", time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}

	if _, err := ParseSessionToken(tok, "wrong-secret"); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseSessionToken_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := ParseSessionToken("not.a.jwt", "secret"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestParseSessionToken_RejectsNonHMAC(t *testing.T) {
	t.Parallel()

	claims := SessionClaims{
		Role: "free",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "mallory",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign unsigned token: %v", err)
	}

	if _, err := ParseSessionToken(signed, "secret"); err == nil {
		t.Fatal("expected error for token signed with none algorithm")
	}
}

func TestParseSessionToken_MissingSubject(t *testing.T) {
	t.Parallel()

	tok, err := GenerateSessionToken("secret", "", "free", time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}

	if _, err := ParseSessionToken(tok, "secret"); err == nil {
		t.Fatal("expected error for token without subject")
	}
}
