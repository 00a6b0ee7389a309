package handlers

import (
	"cellardoor/internal/domain"
	applog "cellardoor/internal/log"
	"cellardoor/internal/repos"
	"cellardoor/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type FeedbackHandler struct {
	Feedback *repos.FeedbackRepo
	Prods    *repos.ProductRepo
}

// GET /api/feedbacks/:productId
func (h *FeedbackHandler) ListByProduct(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "missing productId")
	}
	reviews, err := h.Feedback.ListByProduct(pid)
	if err != nil {
		applog.Error(c, "feedbacks.list.fail", err, map[string]any{"product": pid})
		return jsonErr(c, fiber.StatusInternalServerError, "could not load reviews")
	}
	avg, count, err := h.Feedback.AverageRating(pid)
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load reviews")
	}
	return c.JSON(fiber.Map{"reviews": reviews, "averageRating": avg, "count": count})
}

// POST /api/feedbacks
func (h *FeedbackHandler) Create(c *fiber.Ctx) error {
	var f domain.Feedback
	if err := c.BodyParser(&f); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	pid, ok := validate.ID(f.ProductID)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "missing productId")
	}
	name, ok := validate.Name(f.Customer)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "customer name is required")
	}
	if !validate.Rating(f.Rating) {
		return jsonErr(c, fiber.StatusBadRequest, "rating must be between 1 and 5")
	}
	if _, err := h.Prods.Get(pid); err != nil {
		return jsonErr(c, fiber.StatusNotFound, "product "+pid+" not found")
	}

	f.ID = "fb-" + uuid.NewString()
	f.ProductID = pid
	f.Customer = name
	if err := h.Feedback.Create(f); err != nil {
		applog.Error(c, "feedbacks.create.fail", err, map[string]any{"product": pid})
		return jsonErr(c, fiber.StatusInternalServerError, "could not save review")
	}
	applog.Audit(c, "feedbacks.create", map[string]any{"product": pid, "rating": f.Rating})
	return c.SendStatus(fiber.StatusCreated)
}
