package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-console/internal/api/dto"
	"github.com/spec-kit/admin-console/internal/remote"
	"github.com/spec-kit/admin-console/internal/service"
	apperrors "github.com/spec-kit/admin-console/pkg/util/errorutil"
)

// AdminHandler serves the Admin-only directory and audit screens.
type AdminHandler struct {
	directory *service.DirectoryService
	audit     *service.AuditService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(directory *service.DirectoryService, audit *service.AuditService) *AdminHandler {
	return &AdminHandler{directory: directory, audit: audit}
}

// ListUsers GET /admin/users?role=&search=.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	client, err := requireClient(c)
	if err != nil {
		return err
	}
	filter := service.UserFilter{Role: c.Query("role", service.RoleAll), Search: c.Query("search")}
	users, err := h.directory.ListUsers(c.UserContext(), client.API, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"screen": "users", "data": users})
}

// CreateUser POST /admin/users.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	client, err := requireClient(c)
	if err != nil {
		return err
	}
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	created, err := h.directory.CreateUser(c.UserContext(), client.API, req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CreatedUserResponse{
		ID:                 created.ID,
		NeedsVendorDetails: created.NeedsVendorDetails,
	}})
}

// UpdateUser PUT /admin/users/:id.
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	client, err := requireClient(c)
	if err != nil {
		return err
	}
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.directory.UpdateUser(c.UserContext(), client.API, c.Params("id"), req.Input()); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// DeleteUser DELETE /admin/users/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	client, err := requireClient(c)
	if err != nil {
		return err
	}
	if err := h.directory.DeleteUser(c.UserContext(), client.API, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListVendors GET /admin/vendors?search=.
func (h *AdminHandler) ListVendors(c *fiber.Ctx) error {
	client, err := requireClient(c)
	if err != nil {
		return err
	}
	vendors, err := h.directory.ListVendors(c.UserContext(), client.API, c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"screen": "vendors", "data": vendors})
}

// CreateVendor POST /admin/vendors.
func (h *AdminHandler) CreateVendor(c *fiber.Ctx) error {
	client, err := requireClient(c)
	if err != nil {
		return err
	}
	var req dto.VendorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	in := remote.VendorInput{User: req.User, ServicesProvided: req.ServicesProvided, ShopAddress: req.ShopAddress}
	if err := h.directory.CreateVendor(c.UserContext(), client.API, in); err != nil {
		return err
	}
	return c.SendStatus(http.StatusCreated)
}

// UpdateVendorShop PUT /admin/vendors/:id/shop.
func (h *AdminHandler) UpdateVendorShop(c *fiber.Ctx) error {
	client, err := requireClient(c)
	if err != nil {
		return err
	}
	var req dto.VendorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.directory.UpdateVendorShop(c.UserContext(), client.API, c.Params("id"), req.ShopAddress); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// SetVendorServices PUT /admin/vendors/:id/services.
func (h *AdminHandler) SetVendorServices(c *fiber.Ctx) error {
	client, err := requireClient(c)
	if err != nil {
		return err
	}
	var req dto.VendorServicesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.directory.SetVendorServices(c.UserContext(), client.API, c.Params("id"), req.ServicesProvided); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListServices GET /admin/services?search=.
func (h *AdminHandler) ListServices(c *fiber.Ctx) error {
	client, err := requireClient(c)
	if err != nil {
		return err
	}
	services, err := h.directory.ListServices(c.UserContext(), client.API, c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"screen": "services", "data": services})
}

// CreateService POST /admin/services.
func (h *AdminHandler) CreateService(c *fiber.Ctx) error {
	client, err := requireClient(c)
	if err != nil {
		return err
	}
	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.directory.CreateService(c.UserContext(), client.API, req.Input()); err != nil {
		return err
	}
	return c.SendStatus(http.StatusCreated)
}

// UpdateService PUT /admin/services/:id.
func (h *AdminHandler) UpdateService(c *fiber.Ctx) error {
	client, err := requireClient(c)
	if err != nil {
		return err
	}
	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.directory.UpdateService(c.UserContext(), client.API, c.Params("id"), req.Input()); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// DeleteService DELETE /admin/services/:id.
func (h *AdminHandler) DeleteService(c *fiber.Ctx) error {
	client, err := requireClient(c)
	if err != nil {
		return err
	}
	if err := h.directory.DeleteService(c.UserContext(), client.API, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ServiceVendors GET /admin/services/:id/vendors.
func (h *AdminHandler) ServiceVendors(c *fiber.Ctx) error {
	client, err := requireClient(c)
	if err != nil {
		return err
	}
	vendors, err := h.directory.VendorsByService(c.UserContext(), client.API, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": vendors})
}

// Audit GET /admin/audit?limit=.
func (h *AdminHandler) Audit(c *fiber.Ctx) error {
	entries, err := h.audit.Recent(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"screen": "audit", "data": dto.NewAuditEntries(entries)})
}
