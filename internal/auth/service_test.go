package auth

import (
	"context"
	"errors"
	"testing"

	"property-expert/internal/config"
	"property-expert/internal/store"
)

func testService() (*Service, *store.MemoryStore) {
	st := store.NewMemoryStore()
	cfg := config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 1,
		AdminEmails:   []string{"admin@gmail.com"},
	}
	return NewService(st, cfg), st
}

func TestPasswordIsHashedBeforeSaving(t *testing.T) {
	service, st := testService()
	ctx := context.Background()

	password := "Password@123"
	if _, err := service.SignUp(ctx, "Test User", "test@example.com", password); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := st.UserByEmail(ctx, "test@example.com")
	if err != nil {
		t.Fatalf("user not found: %v", err)
	}
	if user.PasswordHash == password {
		t.Fatalf("password was stored in plain text")
	}
	if user.CreatedAt == nil {
		t.Fatalf("expected createdAt to be stamped")
	}
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	service, _ := testService()
	ctx := context.Background()

	if _, err := service.SignUp(ctx, "A", "dup@example.com", "pw123456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.SignUp(ctx, "B", "dup@example.com", "pw123456"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignInRoundTrip(t *testing.T) {
	service, _ := testService()
	ctx := context.Background()

	created, err := service.SignUp(ctx, "Test User", "login@example.com", "Password@123")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	token, user, err := service.SignIn(ctx, "login@example.com", "Password@123")
	if err != nil {
		t.Fatalf("signin: %v", err)
	}
	if user.ID != created.ID {
		t.Fatalf("expected user %s, got %s", created.ID, user.ID)
	}

	userID, email, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if userID != created.ID || email != "login@example.com" {
		t.Fatalf("token claims mismatch: %s, %s", userID, email)
	}
}

func TestSignInRejectsWrongPassword(t *testing.T) {
	service, _ := testService()
	ctx := context.Background()

	if _, err := service.SignUp(ctx, "Test User", "x@example.com", "correct-pw"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, _, err := service.SignIn(ctx, "x@example.com", "wrong-pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := service.SignIn(ctx, "nobody@example.com", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	service, _ := testService()

	if _, _, err := service.ValidateToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestIsAdminUsesConfiguredAllowlist(t *testing.T) {
	service, _ := testService()

	if !service.IsAdmin("admin@gmail.com") {
		t.Fatalf("expected allowlisted email to be admin")
	}
	if service.IsAdmin("user@gmail.com") {
		t.Fatalf("expected non-listed email to be denied")
	}
}
