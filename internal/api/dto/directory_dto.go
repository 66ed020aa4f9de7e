package dto

import (
	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/remote"
)

// UserRequest payload for user create and update.
type UserRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Role     domain.Role `json:"role"`
	IsActive *bool       `json:"isActive"`
}

// Input converts the payload. Accounts are active unless told otherwise.
func (r UserRequest) Input() remote.UserInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return remote.UserInput{Name: r.Name, Email: r.Email, Phone: r.Phone, Role: r.Role, IsActive: active}
}

// CreatedUserResponse reports a new account.
type CreatedUserResponse struct {
	ID                 string `json:"id"`
	NeedsVendorDetails bool   `json:"needs_vendor_details"`
}

// VendorRequest payload for POST /admin/vendors.
type VendorRequest struct {
	User             string             `json:"user"`
	ServicesProvided []string           `json:"servicesProvided"`
	ShopAddress      domain.ShopAddress `json:"shopAddress"`
}

// VendorServicesRequest payload for PUT /admin/vendors/:id/services.
type VendorServicesRequest struct {
	ServicesProvided []string `json:"servicesProvided"`
}

// ServiceRequest payload for service create and update.
type ServiceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Input converts the payload.
func (r ServiceRequest) Input() remote.ServiceInput {
	return remote.ServiceInput{Name: r.Name, Description: r.Description}
}
