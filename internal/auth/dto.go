package auth

import (
	"time"

	"github.com/angelmondragon/storefront/internal/policy"
	"github.com/angelmondragon/storefront/internal/users"
)

// RegisterRequest carries the validated sign-up form. Password is plaintext and
// never leaves this package unhashed.
type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

// LoginRequest is the credential pair submitted by the login form.
type LoginRequest struct {
	Username string
	Password string
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	AccessID    string         `json:"-"`
	ExpiresAt   time.Time      `json:"expires_at"`
	User        *users.UserDTO `json:"user"`
}

// Session is the identity resolved from a presented token.
type Session struct {
	Identity  policy.Identity
	AccessID  string
	ExpiresAt time.Time
}
