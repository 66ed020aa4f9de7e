package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/admin-console/internal/config"
	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/remote"
	"github.com/spec-kit/admin-console/internal/session"
)

const clientKey = "console_client"

// ClientMiddleware resolves the console client behind the request cookie.
type ClientMiddleware struct {
	registry   *session.Registry
	cookieName string
	secure     bool
}

// NewClientMiddleware constructs middleware.
func NewClientMiddleware(registry *session.Registry, cfg config.SessionConfig) *ClientMiddleware {
	name := cfg.CookieName
	if name == "" {
		name = "console_client"
	}
	return &ClientMiddleware{registry: registry, cookieName: name, secure: cfg.CookieSecure}
}

// Handle attaches the client to the request and, the first time the client is
// seen, follows its startup redirect on plain navigations.
func (m *ClientMiddleware) Handle(c *fiber.Ctx) error {
	id := c.Cookies(m.cookieName)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     m.cookieName,
			Value:    id,
			Path:     "/",
			HTTPOnly: true,
			Secure:   m.secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}

	client, redirect, release := m.registry.Acquire(c.UserContext(), id)
	defer release()
	c.Locals(clientKey, client)

	if redirect != "" && followsStartup(c) && !within(c.Path(), string(redirect)) {
		return c.Redirect(string(redirect), fiber.StatusFound)
	}
	return c.Next()
}

// followsStartup reports whether the request is a plain navigation that the
// startup redirect may replace. Form posts, logout and login handoffs always
// reach their handler.
func followsStartup(c *fiber.Ctx) bool {
	if c.Method() != fiber.MethodGet {
		return false
	}
	path := c.Path()
	switch {
	case within(path, "/logout"), within(path, "/login/google"):
		return false
	case path == session.LoginRoute && c.Query("token") != "":
		return false
	}
	return true
}

// endSessionOnRejection logs the client out when the remote API refused its
// bearer token.
func endSessionOnRejection(c *fiber.Ctx, client *session.Client) error {
	err := c.Next()
	if err != nil && remote.IsUnauthorized(err) && client.Manager.Session().IsAuthenticated {
		client.Manager.Logout(c.UserContext())
	}
	return err
}

func within(path, route string) bool {
	return path == route || strings.HasPrefix(path, route+"/")
}

// ClientFromContext retrieves the console client of the request.
func ClientFromContext(c *fiber.Ctx) (*session.Client, bool) {
	val := c.Locals(clientKey)
	if val == nil {
		return nil, false
	}
	client, ok := val.(*session.Client)
	return client, ok
}

// RequireRole guards a route subtree with Authorize.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		client, ok := ClientFromContext(c)
		if !ok {
			return c.Redirect(session.LoginRoute, fiber.StatusFound)
		}

		decision := Authorize(client.Manager.Session(), role)
		switch decision.Kind {
		case DecisionRender:
			return endSessionOnRejection(c, client)
		case DecisionShowLoading:
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "loading"})
		default:
			return c.Redirect(decision.Target, fiber.StatusFound)
		}
	}
}
