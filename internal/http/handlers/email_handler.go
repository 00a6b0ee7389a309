package handlers

import (
	applog "cellardoor/internal/log"
	"cellardoor/internal/services"
	"cellardoor/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type EmailHandler struct {
	Mail *services.MailService
}

// POST /api/email — contact form dispatch.
func (h *EmailHandler) Send(c *fiber.Ctx) error {
	var body struct {
		To      string `json:"to"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonErr(c, fiber.StatusBadRequest, "malformed body")
	}
	to, ok := validate.Email(body.To)
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "invalid recipient email")
	}
	if body.Subject == "" {
		return jsonErr(c, fiber.StatusBadRequest, "subject is required")
	}

	if err := h.Mail.Send(to, body.Subject, body.Message); err != nil {
		applog.Error(c, "email.send.fail", err, map[string]any{"to": to})
		return jsonErr(c, fiber.StatusInternalServerError, "could not send email")
	}
	applog.Audit(c, "email.send", map[string]any{"to": to})
	return c.JSON(fiber.Map{"ok": true})
}
