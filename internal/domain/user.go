// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"fmt"
)

const (
	MaxUsernameLen = 36
	MinPort        = 1
	MaxPort        = 65535
)

// ErrValidation marks input rejected before any network round-trip.
var ErrValidation = errors.New("validation")

var (
	ErrUsernameEmpty   = fmt.Errorf("%w: username empty", ErrValidation)
	ErrUsernameTooLong = fmt.Errorf("%w: username too long", ErrValidation)
	ErrPasswordEmpty   = fmt.Errorf("%w: password empty", ErrValidation)
	ErrContentEmpty    = fmt.Errorf("%w: message content empty", ErrValidation)
	ErrInvalidPort     = fmt.Errorf("%w: port out of range", ErrValidation)
	ErrInvalidRole     = fmt.Errorf("%w: unknown role", ErrValidation)
)

type UserID int64

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

// Profile is the identity recorded on a successful authentication.
type Profile struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Token    string `json:"-"`
}

func (p Profile) IsAdmin() bool { return p.Role == RoleAdmin }

// Credentials is what login and register send.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	if c.Username == "" {
		return ErrUsernameEmpty
	}
	if len(c.Username) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	if c.Password == "" {
		return ErrPasswordEmpty
	}
	return nil
}

// AdminUser is one row of the admin user listing.
type AdminUser struct {
	ID       UserID `json:"_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// ValidatePort checks a listening port chosen by an admin.
func ValidatePort(port int) error {
	if port < MinPort || port > MaxPort {
		return ErrInvalidPort
	}
	return nil
}
