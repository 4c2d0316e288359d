package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/pawan-gold/goldcrest/internal/shared"
)

func TestAuthenticateAcceptsConfiguredPair(t *testing.T) {
	svc, err := NewService("Pawan Gold", "pawangold@gmail.com", "pawangold@123")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	user, err := svc.Authenticate(context.Background(), "pawangold@gmail.com", "pawangold@123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Name != "Pawan Gold" || user.Email != "pawangold@gmail.com" {
		t.Fatalf("unexpected identity: %+v", user)
	}
}

func TestAuthenticateRejectsEveryOtherPair(t *testing.T) {
	svc, err := NewService("Pawan Gold", "pawangold@gmail.com", "pawangold@123")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	cases := []struct {
		name            string
		email, password string
	}{
		{"wrong password", "pawangold@gmail.com", "nope"},
		{"wrong email", "someone@example.com", "pawangold@123"},
		{"both wrong", "someone@example.com", "nope"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Authenticate(context.Background(), tc.email, tc.password)
			if !errors.Is(err, shared.ErrInvalidCredentials) {
				t.Fatalf("every failure must yield the same generic error, got %v", err)
			}
		})
	}
}
