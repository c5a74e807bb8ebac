package utils

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("secret", "12345")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	userID, err := ParseUserID("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != "12345" {
		t.Errorf("got user %q, want 12345", userID)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("secret", "12345")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseUserID("other-secret", token); err == nil {
		t.Error("token accepted with the wrong secret")
	}
}

func TestJWTGarbage(t *testing.T) {
	if _, err := ParseUserID("secret", "not-a-token"); err == nil {
		t.Error("garbage token accepted")
	}
}
