package handlers

import (
	"time"

	applog "cellardoor/internal/log"
	"cellardoor/internal/services"
	"cellardoor/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "name is required (max 60 chars)")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid email")
	}
	if !validate.Password(req.Password) {
		return jsonErr(c, fiber.StatusBadRequest, "password must be 8-64 chars with upper, lower, digit and symbol")
	}

	a, err := h.Auth.Register(name, email, req.Password)
	if err != nil {
		if err == services.ErrEmailTaken {
			return jsonErr(c, fiber.StatusConflict, "email already registered")
		}
		applog.Error(c, "auth.register.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not register")
	}
	applog.Audit(c, "auth.register", map[string]any{"email": email})
	return c.Status(fiber.StatusCreated).JSON(a)
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)

	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return jsonErr(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	a, err := h.Auth.Login(sid, email, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return jsonErr(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.JSON(a)
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.JSON(fiber.Map{"ok": true})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	a, err := h.Auth.Current(c.Cookies("sid"))
	if err != nil || a == nil {
		return jsonErr(c, fiber.StatusUnauthorized, "not logged in")
	}
	return c.JSON(a)
}
