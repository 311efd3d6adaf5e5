package service

import "testing"

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "" || hash == "secret1" {
		t.Fatalf("hash must not be empty or equal to the plaintext")
	}
	if !VerifyPassword("secret1", hash) {
		t.Fatalf("expected verify to succeed for the original password")
	}
	if VerifyPassword("secret2", hash) {
		t.Fatalf("expected verify to fail for a different password")
	}
}

func TestHashPasswordSaltedPerCall(t *testing.T) {
	h1, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	h2, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password must differ")
	}
	if !VerifyPassword("secret1", h1) || !VerifyPassword("secret1", h2) {
		t.Fatalf("both hashes must verify the original password")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if VerifyPassword("secret1", "not-a-bcrypt-hash") {
		t.Fatalf("expected verify to fail for a malformed hash")
	}
}
