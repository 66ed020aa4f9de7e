package remote

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-console/internal/domain"
)

// MyOrders returns the orders visible to the authenticated account.
func (c *Client) MyOrders(ctx context.Context) ([]domain.Order, error) {
	orders := []domain.Order{}
	if err := c.call(ctx, fiber.MethodGet, "/order/getMyOrders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderSummary returns order counts per status.
func (c *Client) OrderSummary(ctx context.Context) (*domain.OrderSummary, error) {
	var summary domain.OrderSummary
	if err := c.call(ctx, fiber.MethodGet, "/order/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
