// This file wraps the authentication endpoints.
package api

import (
	"context"
	"net/http"

	"github.com/waymark-dev/waymark/internal/roadmap"
)

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the register request body. PasswordConfirm must match
// Password; the server rejects the pair otherwise.
type Registration struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
}

// AuthResponse is returned by both login and register.
type AuthResponse struct {
	User  roadmap.User `json:"user"`
	Token string       `json:"token"`
}

// Login exchanges credentials for a user and token.
func (c *Client) Login(ctx context.Context, creds Credentials) (AuthResponse, error) {
	var out AuthResponse
	data, err := c.do(ctx, http.MethodPost, "/auth/login/", nil, creds)
	if err != nil {
		return out, err
	}
	return out, decodeInto(data, &out)
}

// Register creates an account and returns the signed-in user and token.
func (c *Client) Register(ctx context.Context, reg Registration) (AuthResponse, error) {
	var out AuthResponse
	data, err := c.do(ctx, http.MethodPost, "/auth/register/", nil, reg)
	if err != nil {
		return out, err
	}
	return out, decodeInto(data, &out)
}

// Logout invalidates the current token server-side.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout/", nil, nil)
	return err
}

// Profile returns the signed-in user, revalidating the stored token.
func (c *Client) Profile(ctx context.Context) (roadmap.User, error) {
	var out roadmap.User
	data, err := c.do(ctx, http.MethodGet, "/auth/profile/", nil, nil)
	if err != nil {
		return out, err
	}
	return out, decodeInto(data, &out)
}
