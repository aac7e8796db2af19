package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_NotPlaintext(t *testing.T) {
	hash, err := hashPassword("segredo123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "segredo123" {
		t.Fatal("hash equals the plaintext password")
	}
	if strings.Contains(hash, "segredo123") {
		t.Fatal("hash contains the plaintext password")
	}
}

func TestVerifyPassword_RoundTrip(t *testing.T) {
	hash, err := hashPassword("segredo123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !verifyPassword("segredo123", hash) {
		t.Error("correct password rejected")
	}
	if verifyPassword("errada999", hash) {
		t.Error("wrong password accepted")
	}
	if verifyPassword("", hash) {
		t.Error("empty password accepted")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	h1, err := hashPassword("segredo123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := hashPassword("segredo123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1 == h2 {
		t.Error("expected distinct hashes for the same password")
	}
}
