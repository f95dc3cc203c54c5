package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"griya-properti/internal/domain"
	"griya-properti/internal/middleware"
	"griya-properti/internal/service/property"
)

type PropertyHandler struct {
	propertyService property.Service
}

func NewPropertyHandler(propertyService property.Service) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreatePropertyInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	prop, err := h.propertyService.Create(c.Context(), userID, input)
	if err != nil {
		if errors.Is(err, property.ErrMissingFields) || errors.Is(err, property.ErrInvalidPrice) {
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(prop)
}

func (h *PropertyHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("propertyId"))
	if err != nil {
		return middleware.BadRequest("Invalid property ID")
	}

	prop, err := h.propertyService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, property.ErrNotFound) {
			return middleware.NotFound("Property not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(prop)
}

func (h *PropertyHandler) ListApproved(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	result, err := h.propertyService.ListApproved(c.Context(), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PropertyHandler) ListPending(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	result, err := h.propertyService.ListPending(c.Context(), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PropertyHandler) ListMine(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	params := getPaginationParams(c)

	result, err := h.propertyService.ListByOwner(c.Context(), userID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PropertyHandler) Approve(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("propertyId"))
	if err != nil {
		return middleware.BadRequest("Invalid property ID")
	}

	prop, err := h.propertyService.Approve(c.Context(), id)
	if err != nil {
		if errors.Is(err, property.ErrNotFound) {
			return middleware.NotFound("Property not found")
		}
		if errors.Is(err, property.ErrNotPending) {
			return middleware.Conflict("Property is not awaiting moderation")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(prop)
}

func (h *PropertyHandler) Reject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("propertyId"))
	if err != nil {
		return middleware.BadRequest("Invalid property ID")
	}

	// Reason is optional, an empty body is fine.
	var input struct {
		Reason string `json:"reason"`
	}
	_ = c.BodyParser(&input)

	prop, err := h.propertyService.Reject(c.Context(), id, input.Reason)
	if err != nil {
		if errors.Is(err, property.ErrNotFound) {
			return middleware.NotFound("Property not found")
		}
		if errors.Is(err, property.ErrNotPending) {
			return middleware.Conflict("Property is not awaiting moderation")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(prop)
}

func (h *PropertyHandler) UploadPhoto(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	id, err := uuid.Parse(c.Params("propertyId"))
	if err != nil {
		return middleware.BadRequest("Invalid property ID")
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return middleware.BadRequest("Photo file is required")
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	fileReader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer fileReader.Close()

	photoURL, err := h.propertyService.UploadPhoto(c.Context(), id, userID, file.Filename, file.Size, mimeType, fileReader)
	if err != nil {
		switch {
		case errors.Is(err, property.ErrNotFound):
			return middleware.NotFound("Property not found")
		case errors.Is(err, property.ErrNotOwner):
			return middleware.Forbidden("Property belongs to another user")
		case errors.Is(err, property.ErrInvalidPhotoType):
			return middleware.BadRequest(err.Error())
		case errors.Is(err, property.ErrPhotoTooLarge):
			return middleware.PayloadTooLarge(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"photo_url": photoURL,
	})
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
