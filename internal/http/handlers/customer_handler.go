package handlers

import (
	"cellardoor/internal/domain"
	applog "cellardoor/internal/log"
	"cellardoor/internal/repos"
	"cellardoor/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	Accounts *repos.AccountRepo
}

// GET /api/customers/me
func (h *CustomerHandler) Me(c *fiber.Ctx) error {
	a, _ := c.Locals("account").(*domain.Account)
	if a == nil {
		return jsonErr(c, fiber.StatusUnauthorized, "login required")
	}
	cust, err := h.Accounts.Customer(a.CustomerID)
	if err != nil {
		return jsonErr(c, fiber.StatusNotFound, "customer profile not found")
	}
	return c.JSON(cust)
}

// PUT /api/customers/me
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	a, _ := c.Locals("account").(*domain.Account)
	if a == nil {
		return jsonErr(c, fiber.StatusUnauthorized, "login required")
	}
	var body domain.Customer
	if err := c.BodyParser(&body); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	name, ok := validate.Name(body.Name)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "name is required (max 60 chars)")
	}
	body.ID = a.CustomerID
	body.Name = name
	if err := h.Accounts.UpdateCustomer(body); err != nil {
		applog.Error(c, "customers.update.fail", err, map[string]any{"customer": a.CustomerID})
		return jsonErr(c, fiber.StatusInternalServerError, "could not update profile")
	}
	applog.Audit(c, "customers.update", map[string]any{"customer": a.CustomerID})
	return h.Me(c)
}
