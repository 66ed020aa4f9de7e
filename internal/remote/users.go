package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-console/internal/domain"
)

// UserInput is the body of user create and update calls.
type UserInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone,omitempty"`
	Role     domain.Role `json:"role,omitempty"`
	IsActive bool        `json:"isActive"`
}

// ListUsers returns every account.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	if err := c.call(ctx, fiber.MethodGet, "/user/getAllUsers", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser registers an account and returns its id. The id is empty when
// the API does not echo the created user back.
func (c *Client) CreateUser(ctx context.Context, in UserInput) (string, error) {
	const endpoint = "POST /user/createUser"

	status, body, err := c.send(ctx, fiber.MethodPost, "/user/createUser", in)
	if err != nil {
		return "", err
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return "", apiError(status, body)
	}

	var res struct {
		Success *bool        `json:"success"`
		Message string       `json:"message"`
		User    *domain.User `json:"user"`
		Data    *domain.User `json:"data"`
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return "", nil
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return "", malformed(endpoint, "body is not a JSON object: %v", err)
	}
	if res.Success != nil && !*res.Success {
		return "", &APIError{Status: status, Message: res.Message}
	}
	switch {
	case res.User != nil:
		return res.User.ID, nil
	case res.Data != nil:
		return res.Data.ID, nil
	default:
		return "", nil
	}
}

// UpdateUser replaces the editable fields of an account.
func (c *Client) UpdateUser(ctx context.Context, id string, in UserInput) error {
	return c.call(ctx, fiber.MethodPut, "/user/updateUser/"+url.PathEscape(id), in, nil)
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.call(ctx, fiber.MethodDelete, "/user/deleteUser/"+url.PathEscape(id), nil, nil)
}
