package remote

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-console/internal/domain"
)

// LoginResult is the token pair returned by POST /auth/login.
type LoginResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var res LoginResult
	if err := c.call(ctx, fiber.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &res); err != nil {
		return nil, err
	}
	if res.AccessToken == "" {
		return nil, malformed("POST /auth/login", "token not received from server")
	}
	return &res, nil
}

// LoggedUser returns the account behind the current Authorization header.
func (c *Client) LoggedUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.call(ctx, fiber.MethodGet, "/user/loggedUser", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GoogleLoginURL is where the browser goes to start the Google sign-in flow.
func (c *Client) GoogleLoginURL() string {
	return c.baseURL + "/auth/google"
}
