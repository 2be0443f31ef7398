package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/sloppysaint/mcqSurgery/internal/services"
)

func newAuthService(t *testing.T) *services.AuthService {
	return services.NewAuthService(newTestDB(t), "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newAuthService(t)

	token, user, err := auth.Register("Alice", "Alice@Example.com", "password123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected a lowercased email, got %q", user.Email)
	}
	if user.PasswordHash == "password123" {
		t.Fatalf("password stored in plain text")
	}

	token, logged, err := auth.Login("alice@example.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != user.ID || token == "" {
		t.Fatalf("unexpected login result")
	}
	if logged.LastLogin == nil {
		t.Fatalf("expected last login recorded")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth := newAuthService(t)

	if _, _, err := auth.Register("Alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, _, err := auth.Register("Other", "ALICE@example.com", "password456")
	if !errors.Is(err, services.ErrConflict) {
		t.Fatalf("expected conflict on duplicate email, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	auth := newAuthService(t)

	if _, _, err := auth.Register("Alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := auth.Login("alice@example.com", "wrong"); !errors.Is(err, services.ErrBadCredentials) {
		t.Fatalf("expected bad credentials, got %v", err)
	}
	if _, _, err := auth.Login("nobody@example.com", "password123"); !errors.Is(err, services.ErrBadCredentials) {
		t.Fatalf("expected bad credentials for unknown email, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	auth := newAuthService(t)

	_, user, err := auth.Register("Alice", "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	userID, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, userID)
	}

	if _, err := auth.ValidateToken(token + "x"); err == nil {
		t.Fatalf("expected a tampered token to fail")
	}
}
