package auth

import (
	"testing"
	"time"
)

func TestNewAPIToken(t *testing.T) {
	tok, err := NewAPIToken()
	if err != nil {
		t.Fatalf("NewAPIToken() error = %v", err)
	}
	if len(tok) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(tok))
	}

	tok2, _ := NewAPIToken()
	if tok == tok2 {
		t.Error("two tokens should never collide")
	}
}

func TestResetToken_RoundTrip(t *testing.T) {
	token, err := GenerateResetToken("secret", "alice", time.Hour)
	if err != nil {
		t.Fatalf("GenerateResetToken() error = %v", err)
	}

	username, err := ParseResetToken("secret", token)
	if err != nil {
		t.Fatalf("ParseResetToken() error = %v", err)
	}
	if username != "alice" {
		t.Errorf("username = %q, want alice", username)
	}
}

func TestResetToken_WrongSecret(t *testing.T) {
	token, _ := GenerateResetToken("secret", "alice", time.Hour)

	if _, err := ParseResetToken("other-secret", token); err == nil {
		t.Error("token signed with another secret should not parse")
	}
}

func TestResetToken_Expired(t *testing.T) {
	token, _ := GenerateResetToken("secret", "alice", -time.Minute)

	if _, err := ParseResetToken("secret", token); err == nil {
		t.Error("expired token should not parse")
	}
}

func TestResetToken_Garbage(t *testing.T) {
	if _, err := ParseResetToken("secret", "not-a-token"); err == nil {
		t.Error("garbage should not parse")
	}
}
