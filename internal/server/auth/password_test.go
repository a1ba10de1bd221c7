package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatalf("hash equals raw password")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected hash format: %q", hash)
	}

	if !VerifyPassword("correct horse battery staple", hash) {
		t.Fatalf("correct password did not verify")
	}
	if VerifyPassword("wrong password", hash) {
		t.Fatalf("wrong password verified")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected distinct hashes for same input")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	if VerifyPassword("pw", "not-a-bcrypt-hash") {
		t.Fatalf("malformed hash verified")
	}
	if VerifyPassword("pw", "") {
		t.Fatalf("empty hash verified")
	}
}
