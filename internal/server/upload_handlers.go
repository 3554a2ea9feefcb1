package server

import (
	"io"

	"atelier/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Upload handles POST /api/upload. It accepts a multipart form with a "file"
// field and returns the stored file's public URLs.
func (s *Server) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unreadable upload"))
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, int64(fileHeader.Size)))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	result, err := s.uploads.Save(content)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}
