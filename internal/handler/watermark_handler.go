package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"griya-properti/internal/domain"
	"griya-properti/internal/middleware"
	"griya-properti/internal/service/watermark"
)

type WatermarkHandler struct {
	watermarkService watermark.Service
}

func NewWatermarkHandler(watermarkService watermark.Service) *WatermarkHandler {
	return &WatermarkHandler{watermarkService: watermarkService}
}

func (h *WatermarkHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.watermarkService.GetSettings(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(settings)
}

func (h *WatermarkHandler) UpdateSettings(c *fiber.Ctx) error {
	var input domain.UpdateWatermarkInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	settings, err := h.watermarkService.UpdateSettings(c.Context(), input)
	if err != nil {
		if errors.Is(err, watermark.ErrInvalidPosition) || errors.Is(err, watermark.ErrInvalidOpacity) {
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(settings)
}

func (h *WatermarkHandler) UploadLogo(c *fiber.Ctx) error {
	file, err := c.FormFile("logo")
	if err != nil {
		return middleware.BadRequest("Logo file is required")
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

	logoURL, err := h.watermarkService.UploadLogo(c.Context(), file.Filename, file.Size, mimeType, fileReader)
	if err != nil {
		if errors.Is(err, watermark.ErrInvalidFileType) {
			return middleware.BadRequest(err.Error())
		}
		if errors.Is(err, watermark.ErrFileTooLarge) {
			return middleware.PayloadTooLarge(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"logo_url": logoURL,
	})
}

// Apply streams the source image back as a download. The active
// settings travel in headers so the client can render the overlay.
func (h *WatermarkHandler) Apply(c *fiber.Ctx) error {
	imageURL := c.Query("url")
	if imageURL == "" {
		return middleware.BadRequest("url query parameter is required")
	}

	result, err := h.watermarkService.Apply(c.Context(), imageURL)
	if err != nil {
		if errors.Is(err, watermark.ErrInvalidImageURL) {
			return middleware.BadRequest(err.Error())
		}
		if errors.Is(err, watermark.ErrFetchFailed) {
			return middleware.BadGateway(err.Error())
		}
		return err
	}

	c.Set(fiber.HeaderContentType, result.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", result.FileName))
	if result.Settings.Enabled {
		c.Set("X-Watermark-Text", result.Settings.Text)
		c.Set("X-Watermark-Position", result.Settings.Position)
		c.Set("X-Watermark-Opacity", fmt.Sprintf("%.2f", result.Settings.Opacity))
		if result.Settings.LogoURL != nil {
			c.Set("X-Watermark-Logo", *result.Settings.LogoURL)
		}
	}

	return c.Status(fiber.StatusOK).Send(result.Data)
}
