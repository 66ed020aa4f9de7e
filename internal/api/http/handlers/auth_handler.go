package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-console/internal/api/dto"
	"github.com/spec-kit/admin-console/internal/auth"
	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/service"
	"github.com/spec-kit/admin-console/internal/session"
	apperrors "github.com/spec-kit/admin-console/pkg/util/errorutil"
)

// AuthHandler serves login and logout.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Root GET /.
func (h *AuthHandler) Root(c *fiber.Ctx) error {
	return c.Redirect(session.LoginRoute, fiber.StatusFound)
}

// LoginPage GET /login. With a token in the query it completes an external
// login instead.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	var q dto.ExternalLoginQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	if q.Token == "" {
		return c.JSON(dto.LoginView{Screen: "login", GoogleLoginURL: "/login/google"})
	}

	client, err := requireClient(c)
	if err != nil {
		return err
	}
	target, err := h.auth.CompleteExternalLogin(c.UserContext(), client, q.Token, q.RefreshToken, domain.Role(q.Role))
	if err != nil {
		return err
	}
	return c.Redirect(target, fiber.StatusFound)
}

// Login POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	client, err := requireClient(c)
	if err != nil {
		return err
	}
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	target, err := h.auth.Login(c.UserContext(), client, req.Email, req.Password)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderLocation, target)
	return c.Status(fiber.StatusSeeOther).JSON(dto.RedirectResponse{Redirect: target})
}

// Google GET /login/google.
func (h *AuthHandler) Google(c *fiber.Ctx) error {
	return c.Redirect(h.auth.GoogleLoginURL(), fiber.StatusFound)
}

// Logout GET|POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	client, err := requireClient(c)
	if err != nil {
		return err
	}
	return c.Redirect(h.auth.Logout(c.UserContext(), client), fiber.StatusFound)
}

func requireClient(c *fiber.Ctx) (*session.Client, error) {
	client, ok := auth.ClientFromContext(c)
	if !ok || client.API == nil {
		return nil, apperrors.NewUnauthorized("console client required")
	}
	return client, nil
}
