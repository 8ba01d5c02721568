package serverutils

import (
	"testing"
	"time"
)

func TestSessionTokenRoundTripWithoutEnvSecret(t *testing.T) {
	// With JWT_SECRET unset the dev default signs and verifies tokens,
	// so they are never signed with an empty key.
	t.Setenv("JWT_SECRET", "")

	token, err := NewSessionToken("sess-1", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	id, ok := SessionIdFromToken(token)
	if !ok {
		t.Fatal("minted token did not validate")
	}
	if id != "sess-1" {
		t.Errorf("session id = %q, want %q", id, "sess-1")
	}
}

func TestSessionIdFromTokenRejectsForeignSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := NewSessionToken("sess-1", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}

	t.Setenv("JWT_SECRET", "second-secret")
	if _, ok := SessionIdFromToken(token); ok {
		t.Fatal("token signed under another secret validated")
	}

	if _, ok := SessionIdFromToken("not-a-token"); ok {
		t.Fatal("garbage token validated")
	}
}
