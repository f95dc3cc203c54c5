package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"griya-properti/internal/domain"
	"griya-properti/internal/middleware"
	"griya-properti/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.SendNotificationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	notif, err := h.notifService.Send(c.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, notification.ErrMissingFields),
			errors.Is(err, notification.ErrInvalidChannel),
			errors.Is(err, notification.ErrNoRecipients):
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(notif)
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	result, err := h.notifService.List(c.Context(), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	notif, deliveries, err := h.notifService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			return middleware.NotFound("Notification not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"notification": notif,
		"deliveries":   deliveries,
	})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notifService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			return middleware.NotFound("Notification not found")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

// Recipients previews the audience an admin is about to target.
func (h *NotificationHandler) Recipients(c *fiber.Ctx) error {
	audience := domain.NotificationAudience(c.Query("audience", string(domain.AudienceAll)))

	var specific []uuid.UUID
	if audience == domain.AudienceSpecific {
		for _, raw := range c.Request().URI().QueryArgs().PeekMulti("user_id") {
			id, err := uuid.Parse(string(raw))
			if err != nil {
				return middleware.BadRequest("Invalid user ID in user_id parameter")
			}
			specific = append(specific, id)
		}
	}

	users, err := h.notifService.Recipients(c.Context(), audience, specific)
	if err != nil {
		if errors.Is(err, notification.ErrNoRecipients) {
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": len(users),
		"users": users,
	})
}

func (h *NotificationHandler) ListMine(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	unreadOnly := c.Query("unread_only") == "true"
	params := getPaginationParams(c)

	result, err := h.notifService.ListForUser(c.Context(), userID, unreadOnly, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	count, err := h.notifService.CountUnread(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": count,
	})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notifService.MarkAsRead(c.Context(), id, userID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	if err := h.notifService.MarkAllAsRead(c.Context(), userID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
