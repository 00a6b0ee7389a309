package handlers

import (
	applog "cellardoor/internal/log"
	"cellardoor/internal/repos"
	"cellardoor/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type MessageHandler struct {
	Messages *repos.MessageRepo
}

// GET /api/messages?user=...&targetUser=... — the stored two-way history;
// live delivery happens over the websocket channel.
func (h *MessageHandler) Conversation(c *fiber.Ctx) error {
	user, ok := validate.Username(c.Query("user"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "missing user")
	}
	target, ok := validate.Username(c.Query("targetUser"))
	if !ok {
		return jsonErr(c, fiber.StatusBadRequest, "missing targetUser")
	}
	msgs, err := h.Messages.Conversation(user, target, c.QueryInt("limit", 200))
	if err != nil {
		applog.Error(c, "messages.list.fail", err, nil)
		return jsonErr(c, fiber.StatusInternalServerError, "could not load messages")
	}
	return c.JSON(fiber.Map{"messages": msgs})
}
