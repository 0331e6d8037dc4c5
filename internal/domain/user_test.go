package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name string
		in   Credentials
		want error
	}{
		{"ok", Credentials{Username: "alice", Password: "pw"}, nil},
		{"empty username", Credentials{Password: "pw"}, ErrUsernameEmpty},
		{"empty password", Credentials{Username: "alice"}, ErrPasswordEmpty},
		{"long username", Credentials{Username: strings.Repeat("a", MaxUsernameLen+1), Password: "pw"}, ErrUsernameTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
			if tt.want != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("error %v does not wrap ErrValidation", err)
			}
		})
	}
}

func TestValidatePort(t *testing.T) {
	for _, port := range []int{1, 8080, 65535} {
		if err := ValidatePort(port); err != nil {
			t.Errorf("ValidatePort(%d) = %v", port, err)
		}
	}
	for _, port := range []int{0, -1, 65536} {
		if err := ValidatePort(port); !errors.Is(err, ErrInvalidPort) {
			t.Errorf("ValidatePort(%d) = %v, want ErrInvalidPort", port, err)
		}
	}
}

func TestChatInfoDisplayName(t *testing.T) {
	c := ChatInfo{Participants: []string{"alice", "bob"}}
	if got := c.DisplayName(); got != "alice, bob" {
		t.Errorf("DisplayName() = %q", got)
	}
	c.Name = "general"
	if got := c.DisplayName(); got != "general" {
		t.Errorf("DisplayName() = %q", got)
	}
}
