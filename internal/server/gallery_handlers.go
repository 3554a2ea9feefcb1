package server

import (
	"atelier/internal/models"
	"atelier/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetGalleries handles GET /api/galleries
func (s *Server) GetGalleries(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	galleries, err := s.galleryService.ListGalleries(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(galleries)
}

// GetGallery handles GET /api/galleries/:id
func (s *Server) GetGallery(c *fiber.Ctx) error {
	gallery, err := s.galleryService.GetGallery(c.Context(), c.Params("id"))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(gallery)
}

// GetUserGalleries handles GET /api/users/:userId/galleries
func (s *Server) GetUserGalleries(c *fiber.Ctx) error {
	userID, err := s.parseUintID(c, "userId")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 20)
	galleries, listErr := s.galleryService.ListUserGalleries(c.Context(), userID, page.Limit, page.Offset)
	if listErr != nil {
		return models.RespondWithError(c, mapServiceError(listErr), listErr)
	}

	return c.JSON(galleries)
}

// CreateGallery handles POST /api/galleries
func (s *Server) CreateGallery(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	gallery, err := s.galleryService.CreateGallery(c.Context(), service.CreateGalleryInput{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(gallery)
}

// DeleteGallery handles DELETE /api/galleries/:id
func (s *Server) DeleteGallery(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.galleryService.DeleteGallery(c.Context(), userID, c.Params("id")); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// AddGalleryArtwork handles POST /api/galleries/:galleryId/artworks/:artworkId
func (s *Server) AddGalleryArtwork(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	err := s.galleryService.AddArtwork(c.Context(), userID, c.Params("galleryId"), c.Params("artworkId"))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveGalleryArtwork handles DELETE /api/galleries/:galleryId/artworks/:artworkId
func (s *Server) RemoveGalleryArtwork(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	err := s.galleryService.RemoveArtwork(c.Context(), userID, c.Params("galleryId"), c.Params("artworkId"))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetGalleryArtworks handles GET /api/galleries/:id/artworks
func (s *Server) GetGalleryArtworks(c *fiber.Ctx) error {
	filter := s.buildFilter(c)

	artworks, err := s.galleryService.ListGalleryArtworks(c.Context(), c.Params("id"), filter)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(artworks)
}
