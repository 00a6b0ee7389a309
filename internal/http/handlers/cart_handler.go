package handlers

import (
	"errors"

	"cellardoor/internal/services"
	"cellardoor/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
	Auth *services.AuthService
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// GET /api/cart
func (h *CartHandler) Get(c *fiber.Ctx) error {
	ident := h.Auth.Identify(ensureSID(c))
	cv, err := h.Cart.Get(ident)
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load cart")
	}
	return c.JSON(cv)
}

// POST /api/cart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	ident := h.Auth.Identify(ensureSID(c))

	var req cartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	pid, ok := validate.ID(req.ProductID)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "missing productId")
	}

	if err := h.Cart.AddItem(ident, pid, req.Quantity); err != nil {
		return h.cartError(c, err)
	}
	return h.Get(c)
}

// PUT /api/cart
func (h *CartHandler) Update(c *fiber.Ctx) error {
	ident := h.Auth.Identify(ensureSID(c))

	var req cartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	pid, ok := validate.ID(req.ProductID)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "missing productId")
	}

	if err := h.Cart.SetQuantity(ident, pid, req.Quantity); err != nil {
		return h.cartError(c, err)
	}
	return h.Get(c)
}

// DELETE /api/cart/:productId
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	ident := h.Auth.Identify(ensureSID(c))
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "missing productId")
	}
	if err := h.Cart.RemoveItem(ident, pid); err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not update cart")
	}
	return h.Get(c)
}

// DELETE /api/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	ident := h.Auth.Identify(ensureSID(c))
	if err := h.Cart.Clear(ident); err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not clear cart")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *CartHandler) cartError(c *fiber.Ctx, err error) error {
	var notFound *services.ProductNotFoundError
	switch {
	case errors.Is(err, services.ErrBadQuantity):
		return jsonErr(c, fiber.StatusBadRequest, "quantity must be a positive integer")
	case errors.As(err, &notFound):
		return jsonErr(c, fiber.StatusNotFound, "product "+notFound.ProductID+" not found")
	default:
		return jsonErr(c, fiber.StatusInternalServerError, "could not update cart")
	}
}
