package handlers

import (
	"errors"
	"fmt"

	"cellardoor/internal/domain"
	applog "cellardoor/internal/log"
	"cellardoor/internal/repos"
	"cellardoor/internal/services"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Order *services.OrderService
	Repo  *repos.OrderRepo
	Auth  *services.AuthService
}

type placeOrderRequest struct {
	Items           []services.OrderItemInput `json:"items"`
	ShippingAddress domain.ShippingAddress    `json:"shippingAddress"`
	PaymentMethod   string                    `json:"paymentMethod"`
}

// POST /api/orders
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)
	ident := h.Auth.Identify(sid)
	if !ident.Authenticated() {
		return jsonErr(c, fiber.StatusUnauthorized, "login required to place an order")
	}

	var req placeOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed order body")
	}

	order, err := h.Order.Place(ident, req.Items, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		return h.placeError(c, ident, err)
	}

	applog.Audit(c, "order.place", map[string]any{
		"order_id": order.ID,
		"customer": order.CustomerID,
		"total":    order.TotalAmount,
		"items":    len(order.Items),
	})
	return c.Status(fiber.StatusCreated).JSON(order)
}

// placeError maps engine errors onto the response taxonomy: validation input
// failures are 400s naming the offending field or product, commit failures
// are a generic 500 with internals kept to the logs.
func (h *OrderHandler) placeError(c *fiber.Ctx, ident domain.Identity, err error) error {
	var invalid *services.InvalidItemError
	var notFound *services.ProductNotFoundError
	var short *services.InsufficientStockError

	switch {
	case errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrBadAddress),
		errors.Is(err, services.ErrBadPayment):
		applog.Security(c, "order.validation.fail", map[string]any{"error": err.Error()})
		return jsonErr(c, fiber.StatusBadRequest, err.Error())

	case errors.As(err, &invalid):
		return jsonErr(c, fiber.StatusBadRequest,
			fmt.Sprintf("invalid quantity for product %s", invalid.ProductID))

	case errors.As(err, &notFound):
		return jsonErr(c, fiber.StatusBadRequest,
			fmt.Sprintf("product %s not found", notFound.ProductID))

	case errors.As(err, &short):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":     "insufficient stock",
			"productId": short.ProductID,
			"requested": short.Requested,
			"available": short.Available,
		})

	default:
		// Commit failure (incl. a lost stock race) or storage trouble.
		applog.Error(c, "order.place.fail", err, map[string]any{"account": ident.AccountID})
		return jsonErr(c, fiber.StatusInternalServerError, "could not place order, please try again")
	}
}

// GET /api/orders/:id — owner or admin only.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	oid := c.Params("id")
	o, err := h.Repo.Get(oid)
	if err != nil {
		return jsonErr(c, fiber.StatusNotFound, "order not found")
	}

	ident := h.Auth.Identify(c.Cookies("sid"))
	if o.CustomerID != ident.CustomerID {
		if a, err := h.Auth.Current(c.Cookies("sid")); err != nil || a == nil || a.Role != "ADMIN" {
			applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
			return jsonErr(c, fiber.StatusNotFound, "order not found")
		}
	}
	return c.JSON(o)
}

// GET /api/orders — the caller's order history.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	a, _ := c.Locals("account").(*domain.Account)
	if a == nil {
		return jsonErr(c, fiber.StatusUnauthorized, "login required")
	}
	orders, err := h.Repo.ListByCustomer(a.CustomerID)
	if err != nil {
		applog.Error(c, "order.history.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load orders")
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// POST /api/orders/:id/status — admin.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	oid := c.Params("id")
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil || body.Status == "" {
		return jsonErr(c, fiber.StatusBadRequest, "missing status")
	}
	if err := h.Repo.UpdateStatus(oid, body.Status); err != nil {
		applog.Error(c, "order.status.fail", err, map[string]any{"order_id": oid})
		return jsonErr(c, fiber.StatusBadRequest, "could not update status")
	}
	applog.Audit(c, "order.status.update", map[string]any{"order_id": oid, "status": body.Status})
	return c.JSON(fiber.Map{"ok": true})
}
