package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatalf("hash must not equal the plaintext")
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Fatalf("unexpected hash format: %q", hash)
	}

	if !CheckPassword(hash, "s3cret-pass") {
		t.Fatalf("correct password should verify")
	}
	if CheckPassword(hash, "wrong-pass") {
		t.Fatalf("wrong password should not verify")
	}
	if CheckPassword(hash, "") {
		t.Fatalf("empty password should not verify")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("same", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("same", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password should differ")
	}
}

func TestHashPassword_InvalidCostFallsBack(t *testing.T) {
	hash, err := HashPassword("pw", 0)
	if err != nil {
		t.Fatalf("HashPassword with zero cost: %v", err)
	}
	if !CheckPassword(hash, "pw") {
		t.Fatalf("fallback-cost hash should verify")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	if CheckPassword("not-a-bcrypt-hash", "pw") {
		t.Fatalf("malformed hash must not verify")
	}
}
