package handlers

import (
	applog "cellardoor/internal/log"
	"cellardoor/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireUser rejects guests; the resolved account lands in Locals("account").
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return jsonErr(c, fiber.StatusUnauthorized, "login required")
		}
		a, err := auth.Current(sid)
		if err != nil || a == nil {
			return jsonErr(c, fiber.StatusUnauthorized, "login required")
		}
		c.Locals("account", a)
		return c.Next()
	}
}

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return jsonErr(c, fiber.StatusUnauthorized, "login required")
		}
		a, err := auth.Current(sid)
		if err != nil || a == nil || a.Role != "ADMIN" {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return jsonErr(c, fiber.StatusForbidden, "access denied")
		}
		c.Locals("account", a)
		return c.Next()
	}
}
