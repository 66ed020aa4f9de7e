package domain

import "time"

// OrderStatus enumerates order lifecycle states reported by the API.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OwnerDetails identifies the property owner who placed an order.
type OwnerDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Order is a customer order as listed by the remote API.
type Order struct {
	ID              string        `json:"_id"`
	OrderID         string        `json:"orderID"`
	OrderStatus     OrderStatus   `json:"orderStatus"`
	PropertyAddress ShopAddress   `json:"propertyAddress"`
	OwnerDetails    *OwnerDetails `json:"ownerDetails,omitempty"`
	CreatedAt       *time.Time    `json:"createdAt,omitempty"`
}

// OrderSummary aggregates order counts per status.
type OrderSummary struct {
	TotalOrders     int `json:"totalOrders"`
	CompletedOrders int `json:"completedOrders"`
	PendingOrders   int `json:"pendingOrders"`
	CancelledOrders int `json:"cancelledOrders"`
}
