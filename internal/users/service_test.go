package users

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterHashesPassword(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" {
		t.Error("expected generated user id")
	}
	if user.PasswordHash == "s3cret" || user.PasswordHash == "" {
		t.Errorf("password stored unhashed: %q", user.PasswordHash)
	}
}

func TestRegisterRejectsBlankFields(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"empty username", "", "a@example.com", "pw"},
		{"whitespace username", "   ", "a@example.com", "pw"},
		{"empty email", "alice", "", "pw"},
		{"empty password", "alice", "a@example.com", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tc.username, tc.email, tc.password); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if _, err := svc.Register(context.Background(), "alice", "alice@example.com", "pw"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), "Alice", "other@example.com", "pw")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second register err = %v, want ErrDuplicate", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	registered, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("login returned user %q, want %q", user.ID, registered.ID)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if _, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPassword := svc.Login(context.Background(), "alice", "nope")
	_, unknownUser := svc.Login(context.Background(), "bob", "s3cret")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", wrongPassword)
	}
	if !errors.Is(unknownUser, ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v, want ErrInvalidCredentials", unknownUser)
	}
}
