package handlers

import (
	"cellardoor/internal/domain"
	applog "cellardoor/internal/log"
	"cellardoor/internal/repos"
	"cellardoor/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ContentHandler serves the flat content surfaces: blogs, faqs, memberships.
type ContentHandler struct {
	Content *repos.ContentRepo
}

// GET /api/blogs
func (h *ContentHandler) ListBlogs(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	const pageSize = 10
	blogs, err := h.Content.ListBlogs(pageSize, (page-1)*pageSize)
	if err != nil {
		applog.Error(c, "blogs.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load blogs")
	}
	return c.JSON(fiber.Map{"blogs": blogs})
}

// GET /api/blogs/:id
func (h *ContentHandler) GetBlog(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonErr(c, fiber.StatusNotFound, "blog not found")
	}
	b, err := h.Content.GetBlog(id)
	if err != nil {
		return jsonErr(c, fiber.StatusNotFound, "blog not found")
	}
	return c.JSON(b)
}

// POST /api/blogs — admin.
func (h *ContentHandler) CreateBlog(c *fiber.Ctx) error {
	var b domain.Blog
	if err := c.BodyParser(&b); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	if b.Title == "" || b.Body == "" {
		return jsonErr(c, fiber.StatusBadRequest, "title and body are required")
	}
	if b.ID == "" {
		b.ID = "blog-" + uuid.NewString()
	}
	if err := h.Content.CreateBlog(b); err != nil {
		applog.Error(c, "blogs.create.fail", err, nil)
		return jsonErr(c, fiber.StatusBadRequest, "could not create blog")
	}
	applog.Audit(c, "blogs.create", map[string]any{"blog": b.ID})
	return c.SendStatus(fiber.StatusCreated)
}

// GET /api/faqs
func (h *ContentHandler) ListFAQs(c *fiber.Ctx) error {
	faqs, err := h.Content.ListFAQs()
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load faqs")
	}
	return c.JSON(fiber.Map{"faqs": faqs})
}

// POST /api/faqs — admin.
func (h *ContentHandler) CreateFAQ(c *fiber.Ctx) error {
	var f domain.FAQ
	if err := c.BodyParser(&f); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	if f.Question == "" || f.Answer == "" {
		return jsonErr(c, fiber.StatusBadRequest, "question and answer are required")
	}
	if f.ID == "" {
		f.ID = "faq-" + uuid.NewString()
	}
	if err := h.Content.CreateFAQ(f); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "could not create faq")
	}
	applog.Audit(c, "faqs.create", map[string]any{"faq": f.ID})
	return c.SendStatus(fiber.StatusCreated)
}

// POST /api/memberships
func (h *ContentHandler) Subscribe(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	email, ok := validate.Email(body.Email)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid email")
	}
	m := domain.Membership{ID: "mem-" + uuid.NewString(), Email: email}
	if err := h.Content.Subscribe(m); err != nil {
		applog.Error(c, "memberships.subscribe.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not subscribe")
	}
	applog.Audit(c, "memberships.subscribe", map[string]any{"email": email})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

// GET /api/memberships — admin.
func (h *ContentHandler) ListMemberships(c *fiber.Ctx) error {
	members, err := h.Content.ListMemberships()
	if err != nil {
		return jsonErr(c, fiber.StatusInternalServerError, "could not load memberships")
	}
	return c.JSON(fiber.Map{"memberships": members})
}
