package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}

	ok, err := hasher.Matches(hash, "s3cret")
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}
	ok, err = hasher.Matches(hash, "wrong")
	if err != nil || ok {
		t.Fatalf("expected mismatch without error, got ok=%v err=%v", ok, err)
	}
	if _, err := hasher.Matches("not-a-hash", "s3cret"); err == nil {
		t.Fatalf("expected malformed hash error")
	}
}

func TestNewBcryptHasher_FallsBackToDefaultCost(t *testing.T) {
	t.Parallel()

	if got := NewBcryptHasher(99).cost; got != bcrypt.DefaultCost {
		t.Fatalf("unexpected cost: %d", got)
	}
}
