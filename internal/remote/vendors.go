package remote

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-console/internal/domain"
)

// VendorInput is the body of POST /vendor/createVendor.
type VendorInput struct {
	User             string             `json:"user"`
	ServicesProvided []string           `json:"servicesProvided"`
	ShopAddress      domain.ShopAddress `json:"shopAddress"`
}

// ListVendors returns every vendor profile.
func (c *Client) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	vendors := []domain.Vendor{}
	if err := c.call(ctx, fiber.MethodGet, "/vendor/getAllVendors", nil, &vendors); err != nil {
		return nil, err
	}
	return vendors, nil
}

// CreateVendor attaches vendor details to a Vendor-role user.
func (c *Client) CreateVendor(ctx context.Context, in VendorInput) error {
	if in.ServicesProvided == nil {
		in.ServicesProvided = []string{}
	}
	return c.call(ctx, fiber.MethodPost, "/vendor/createVendor", in, nil)
}

// UpdateVendorShop replaces the vendor's shop address.
func (c *Client) UpdateVendorShop(ctx context.Context, id string, addr domain.ShopAddress) error {
	body := struct {
		ShopAddress []domain.ShopAddress `json:"shopAddress"`
	}{ShopAddress: []domain.ShopAddress{addr}}
	return c.call(ctx, fiber.MethodPut, "/vendor/updateVendor/"+url.PathEscape(id), body, nil)
}

// SetVendorServices replaces the list of services a vendor provides.
func (c *Client) SetVendorServices(ctx context.Context, id string, serviceIDs []string) error {
	if serviceIDs == nil {
		serviceIDs = []string{}
	}
	body := struct {
		ServicesProvided []string `json:"servicesProvided"`
	}{ServicesProvided: serviceIDs}
	return c.call(ctx, fiber.MethodPut, "/vendor/updateService/"+url.PathEscape(id)+"/add-service", body, nil)
}

// VendorsByService returns the vendors offering a service.
func (c *Client) VendorsByService(ctx context.Context, serviceID string) ([]domain.Vendor, error) {
	vendors := []domain.Vendor{}
	if err := c.call(ctx, fiber.MethodGet, "/vendor/getVendorByService/"+url.PathEscape(serviceID), nil, &vendors); err != nil {
		return nil, err
	}
	return vendors, nil
}
