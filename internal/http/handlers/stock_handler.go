package handlers

import (
	"errors"

	applog "cellardoor/internal/log"
	"cellardoor/internal/services"
	"cellardoor/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	Stock *services.StockService
}

// GET /api/productstocks/availability?productId=...
func (h *StockHandler) Check(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Query("productId"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "missing productId")
	}
	avail, err := h.Stock.CheckAvailability(pid)
	if err != nil {
		applog.Error(c, "stock.check.fail", err, map[string]any{"product": pid})
		return jsonErr(c, fiber.StatusInternalServerError, "could not check availability")
	}
	return c.JSON(avail)
}

// GET /api/productstocks — admin.
func (h *StockHandler) List(c *fiber.Ctx) error {
	rows, err := h.Stock.ListAll()
	if err != nil {
		applog.Error(c, "stock.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load stock")
	}
	return c.JSON(fiber.Map{"stocks": rows})
}

// PUT /api/productstocks — admin upsert.
func (h *StockHandler) Upsert(c *fiber.Ctx) error {
	var body struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	pid, ok := validate.ID(body.ProductID)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "missing productId")
	}

	if err := h.Stock.SetQuantity(pid, body.Quantity); err != nil {
		var notFound *services.ProductNotFoundError
		switch {
		case errors.Is(err, services.ErrBadQuantity):
			return jsonErr(c, fiber.StatusBadRequest, "quantity must not be negative")
		case errors.As(err, &notFound):
			return jsonErr(c, fiber.StatusNotFound, "product "+pid+" not found")
		default:
			applog.Error(c, "stock.upsert.fail", err, map[string]any{"product": pid})
			return jsonErr(c, fiber.StatusInternalServerError, "could not save stock")
		}
	}
	applog.Audit(c, "stock.upsert", map[string]any{"product": pid, "quantity": body.Quantity})
	return c.JSON(fiber.Map{"ok": true})
}
