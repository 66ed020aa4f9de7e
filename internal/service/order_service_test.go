package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/admin-console/internal/domain"
)

func TestListOrdersByStatus(t *testing.T) {
	svc := NewOrderService()
	api := &fakeAPI{orders: []domain.Order{
		{ID: "o1", OrderStatus: domain.OrderStatusPending},
		{ID: "o2", OrderStatus: domain.OrderStatusCompleted},
		{ID: "o3", OrderStatus: domain.OrderStatusPending},
	}}

	all, err := svc.ListOrders(context.Background(), api, StatusAll)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	pending, err := svc.ListOrders(context.Background(), api, "Pending")
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	cancelled, err := svc.ListOrders(context.Background(), api, "Cancelled")
	require.NoError(t, err)
	assert.Empty(t, cancelled)

	_, err = svc.ListOrders(context.Background(), api, "Lost")
	assert.Error(t, err)
}

func TestDashboardChart(t *testing.T) {
	svc := NewOrderService()
	api := &fakeAPI{summary: &domain.OrderSummary{TotalOrders: 10, CompletedOrders: 6, PendingOrders: 3, CancelledOrders: 1}}

	dash, err := svc.Dashboard(context.Background(), api)
	require.NoError(t, err)
	assert.Equal(t, []ChartSlice{
		{Label: "Total", Value: 10},
		{Label: "Completed", Value: 6},
		{Label: "Pending", Value: 3},
		{Label: "Cancelled", Value: 1},
	}, dash.Chart)
}

func TestProfile(t *testing.T) {
	svc := NewOrderService()
	me := &domain.User{ID: "u1", Name: "Ada", Role: domain.RoleAdmin}

	got, err := svc.Profile(context.Background(), &fakeAPI{me: me})
	require.NoError(t, err)
	assert.Equal(t, me, got)
}
