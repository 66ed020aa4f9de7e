package remote

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-console/internal/domain"
)

// ServiceInput is the body of service create and update calls.
type ServiceInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListServices returns the service catalog.
func (c *Client) ListServices(ctx context.Context) ([]domain.Service, error) {
	services := []domain.Service{}
	if err := c.call(ctx, fiber.MethodGet, "/service/getAllServices", nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// CreateService adds a catalog entry.
func (c *Client) CreateService(ctx context.Context, in ServiceInput) error {
	return c.call(ctx, fiber.MethodPost, "/service/createService", in, nil)
}

// UpdateService edits a catalog entry.
func (c *Client) UpdateService(ctx context.Context, id string, in ServiceInput) error {
	return c.call(ctx, fiber.MethodPut, "/service/updateService/"+url.PathEscape(id), in, nil)
}

// DeleteService removes a catalog entry.
func (c *Client) DeleteService(ctx context.Context, id string) error {
	return c.call(ctx, fiber.MethodDelete, "/service/deleteService/"+url.PathEscape(id), nil, nil)
}
