package handlers

import (
	"errors"

	"cellardoor/internal/services"
	"cellardoor/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CompareHandler struct {
	Compare *services.CompareService
	Auth    *services.AuthService
}

// GET /api/compare
func (h *CompareHandler) Get(c *fiber.Ctx) error {
	ident := h.Auth.Identify(ensureSID(c))
	products, err := h.Compare.Get(ident)
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load compare list")
	}
	return c.JSON(fiber.Map{"products": products})
}

// POST /api/compare
func (h *CompareHandler) Add(c *fiber.Ctx) error {
	ident := h.Auth.Identify(ensureSID(c))
	var body struct {
		ProductID string `json:"productId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	pid, ok := validate.ID(body.ProductID)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "missing productId")
	}
	if err := h.Compare.Add(ident, pid); err != nil {
		var notFound *services.ProductNotFoundError
		if errors.As(err, &notFound) {
			return jsonErr(c, fiber.StatusNotFound, "product "+pid+" not found")
		}
		return jsonErr(c, fiber.StatusInternalServerError, "could not update compare list")
	}
	return h.Get(c)
}

// DELETE /api/compare/:productId
func (h *CompareHandler) Remove(c *fiber.Ctx) error {
	ident := h.Auth.Identify(ensureSID(c))
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "missing productId")
	}
	if err := h.Compare.Remove(ident, pid); err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not update compare list")
	}
	return h.Get(c)
}
