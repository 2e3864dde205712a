package hash

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	// MinCost keeps the test fast; the work factor is embedded in the
	// hash, so verification is independent of the hasher's setting.
	h := NewBcryptHasher(bcrypt.MinCost)

	hashed, err := h.Hash("SecurePass123!")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hashed == "SecurePass123!" {
		t.Fatal("hash equals plaintext")
	}
	if !h.Verify("SecurePass123!", hashed) {
		t.Fatal("correct password rejected")
	}
	if h.Verify("WrongPass123!", hashed) {
		t.Fatal("wrong password accepted")
	}
}

func TestBcryptHasher_CostFallback(t *testing.T) {
	h := NewBcryptHasher(100)
	if h.cost != Cost {
		t.Fatalf("expected fallback to default cost %d, got %d", Cost, h.cost)
	}
}
