package handlers

import (
	"strconv"
	"strings"

	"cellardoor/internal/domain"
	applog "cellardoor/internal/log"
	"cellardoor/internal/repos"
	"cellardoor/internal/services"
	"cellardoor/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /api/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	f := repos.ProductFilter{
		CategoryID: strings.TrimSpace(c.Query("category")),
		Brand:      strings.TrimSpace(c.Query("brand")),
		Query:      strings.ToLower(strings.TrimSpace(c.Query("q"))),
		Promoted:   c.QueryBool("promoted"),
	}
	if f.CategoryID != "" {
		if _, ok := validate.ID(f.CategoryID); !ok {
			return jsonErr(c, fiber.StatusBadRequest, "invalid category")
		}
	}
	f.MinPrice, _ = strconv.ParseFloat(c.Query("minPrice"), 64)
	f.MaxPrice, _ = strconv.ParseFloat(c.Query("maxPrice"), 64)

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 12)

	products, err := h.Catalog.ListProducts(f, page, pageSize)
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load products")
	}
	return c.JSON(fiber.Map{"products": products, "count": len(products)})
}

// GET /api/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusNotFound, "product not found")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil || p.ProductID == "" {
		return jsonErr(c, fiber.StatusNotFound, "product not found")
	}
	return c.JSON(p)
}

// POST /api/products — admin.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var p domain.Product
	if err := c.BodyParser(&p); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	if _, ok := validate.ID(p.ProductID); !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid productId")
	}
	if p.Name == "" || p.Price < 0 || p.CategoryID == "" {
		return jsonErr(c, fiber.StatusBadRequest, "name, price and categoryId are required")
	}
	if err := h.Catalog.CreateProduct(p); err != nil {
		applog.Error(c, "products.create.fail", err, map[string]any{"product": p.ProductID})
		return jsonErr(c, fiber.StatusBadRequest, "could not create product")
	}
	applog.Audit(c, "products.create", map[string]any{"product": p.ProductID})
	return c.SendStatus(fiber.StatusCreated)
}
