package service

import (
	"context"

	"github.com/spec-kit/admin-console/internal/domain"
	apperrors "github.com/spec-kit/admin-console/pkg/util/errorutil"
)

// StatusAll disables the status filter of the order list.
const StatusAll = "All"

// OrderAPI is the part of the remote API the order and profile screens use.
type OrderAPI interface {
	MyOrders(ctx context.Context) ([]domain.Order, error)
	OrderSummary(ctx context.Context) (*domain.OrderSummary, error)
	LoggedUser(ctx context.Context) (*domain.User, error)
}

// ChartSlice is one bar of the dashboard order chart.
type ChartSlice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Dashboard is the order summary with its chart.
type Dashboard struct {
	Summary domain.OrderSummary `json:"summary"`
	Chart   []ChartSlice        `json:"chart"`
}

// OrderService backs the orders, dashboard and profile screens.
type OrderService struct{}

// NewOrderService builds the service.
func NewOrderService() *OrderService {
	return &OrderService{}
}

// ListOrders returns the caller's orders, optionally narrowed to one status.
func (s *OrderService) ListOrders(ctx context.Context, api OrderAPI, status string) ([]domain.Order, error) {
	if status != "" && status != StatusAll && !domain.OrderStatus(status).Valid() {
		return nil, apperrors.NewValidationError("unknown order status", map[string]any{"status": status})
	}
	orders, err := api.MyOrders(ctx)
	if err != nil {
		return nil, upstreamError(err)
	}
	if status == "" || status == StatusAll {
		return orders, nil
	}
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if string(o.OrderStatus) == status {
			out = append(out, o)
		}
	}
	return out, nil
}

// Dashboard returns the order summary and the chart built from it.
func (s *OrderService) Dashboard(ctx context.Context, api OrderAPI) (*Dashboard, error) {
	summary, err := api.OrderSummary(ctx)
	if err != nil {
		return nil, upstreamError(err)
	}
	return &Dashboard{
		Summary: *summary,
		Chart: []ChartSlice{
			{Label: "Total", Value: summary.TotalOrders},
			{Label: "Completed", Value: summary.CompletedOrders},
			{Label: "Pending", Value: summary.PendingOrders},
			{Label: "Cancelled", Value: summary.CancelledOrders},
		},
	}, nil
}

// Profile returns the logged user's account.
func (s *OrderService) Profile(ctx context.Context, api OrderAPI) (*domain.User, error) {
	user, err := api.LoggedUser(ctx)
	if err != nil {
		return nil, upstreamError(err)
	}
	return user, nil
}
