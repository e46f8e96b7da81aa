package api

import (
	"net/url"

	"github.com/gastrack-dev/gastrack/internal/models"
)

// TokenResponse is the body of a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
}

// Login exchanges credentials for a bearer token. The server expects
// form-encoded username/password fields.
func (c *Client) Login(email, password string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var token TokenResponse
	if err := c.postForm("/auth/login", form, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Register submits a registration. It does not authenticate the new user.
func (c *Client) Register(req RegisterRequest) (*models.User, error) {
	var user models.User
	if err := c.postJSON("/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser fetches the profile of the authenticated user.
func (c *Client) CurrentUser() (*models.User, error) {
	var user models.User
	if err := c.get("/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
