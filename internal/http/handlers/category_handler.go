package handlers

import (
	"cellardoor/internal/domain"
	applog "cellardoor/internal/log"
	"cellardoor/internal/services"
	"cellardoor/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "categories.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load categories")
	}
	return c.JSON(fiber.Map{"categories": cats})
}

// POST /api/categories — admin.
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var cat domain.Category
	if err := c.BodyParser(&cat); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	if _, ok := validate.ID(cat.ID); !ok || cat.Name == "" {
		return jsonErr(c, fiber.StatusBadRequest, "id and name are required")
	}
	if err := h.Catalog.CreateCategory(cat); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "could not create category")
	}
	applog.Audit(c, "categories.create", map[string]any{"category": cat.ID})
	return c.SendStatus(fiber.StatusCreated)
}

// GET /api/promotions
func (h *CategoryHandler) Promotions(c *fiber.Ctx) error {
	promos, err := h.Catalog.ListPromotions()
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load promotions")
	}
	return c.JSON(fiber.Map{"promotions": promos})
}
