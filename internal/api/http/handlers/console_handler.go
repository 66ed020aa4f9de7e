package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-console/internal/api/dto"
	"github.com/spec-kit/admin-console/internal/service"
)

// ConsoleHandler serves the dashboard, orders and profile screens shared by
// every role.
type ConsoleHandler struct {
	orders *service.OrderService
}

// NewConsoleHandler constructs handler.
func NewConsoleHandler(orderService *service.OrderService) *ConsoleHandler {
	return &ConsoleHandler{orders: orderService}
}

// Dashboard GET /<role>, /<role>/dashboard.
func (h *ConsoleHandler) Dashboard(c *fiber.Ctx) error {
	client, err := requireClient(c)
	if err != nil {
		return err
	}
	dash, err := h.orders.Dashboard(c.UserContext(), client.API)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"screen": "dashboard",
		"user":   dto.NewSessionUser(client.Manager.Session().User),
		"data":   dash,
	})
}

// Orders GET /<role>/orders?status=.
func (h *ConsoleHandler) Orders(c *fiber.Ctx) error {
	client, err := requireClient(c)
	if err != nil {
		return err
	}
	status := c.Query("status", service.StatusAll)
	orders, err := h.orders.ListOrders(c.UserContext(), client.API, status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"screen": "orders", "status": status, "data": orders})
}

// Profile GET /<role>/profile.
func (h *ConsoleHandler) Profile(c *fiber.Ctx) error {
	client, err := requireClient(c)
	if err != nil {
		return err
	}
	user, err := h.orders.Profile(c.UserContext(), client.API)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"screen": "profile", "data": user})
}
