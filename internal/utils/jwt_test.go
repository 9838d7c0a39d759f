package utils

import "testing"

func TestGenerateAndValidateJWT(t *testing.T) {
	secret := "unit-test-secret"
	token, err := GenerateJWT(secret, "user-123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	userID, err := ValidateJWT(secret, token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("subject: got %q", userID)
	}
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT("secret-a", "user-123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ValidateJWT("secret-b", token); err == nil {
		t.Fatal("expected validation to fail with wrong secret")
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	if _, err := ValidateJWT("secret", "not.a.token"); err == nil {
		t.Fatal("expected error")
	}
}

func TestGenerateJWTRequiresSecret(t *testing.T) {
	if _, err := GenerateJWT("", "user-123"); err == nil {
		t.Fatal("expected error with empty secret")
	}
}
