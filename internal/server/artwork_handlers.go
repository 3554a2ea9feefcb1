package server

import (
	"atelier/internal/models"
	"atelier/internal/service"

	"github.com/gofiber/fiber/v2"
)

type artworkRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"image_url"`
	IsNsfw        bool     `json:"is_nsfw"`
	IsAiGenerated bool     `json:"is_ai_generated"`
	Tags          []string `json:"tags"`
}

// GetArtworks handles GET /api/artworks
func (s *Server) GetArtworks(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	filter := s.buildFilter(c)

	artworks, err := s.artworkService.ListArtworks(c.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(artworks)
}

// GetArtwork handles GET /api/artworks/:id
func (s *Server) GetArtwork(c *fiber.Ctx) error {
	id := c.Params("id")

	artwork, err := s.artworkService.GetArtwork(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(artwork)
}

// GetUserArtworks handles GET /api/users/:id/artworks
func (s *Server) GetUserArtworks(c *fiber.Ctx) error {
	userID, err := s.parseUintID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 20)
	filter := s.buildFilter(c)

	artworks, listErr := s.artworkService.ListUserArtworks(c.Context(), userID, filter, page.Limit, page.Offset)
	if listErr != nil {
		return models.RespondWithError(c, mapServiceError(listErr), listErr)
	}

	return c.JSON(artworks)
}

// CreateArtwork handles POST /api/artworks
func (s *Server) CreateArtwork(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req artworkRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	artwork, err := s.artworkService.CreateArtwork(c.Context(), service.CreateArtworkInput{
		UserID:        userID,
		Title:         req.Title,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		IsNsfw:        req.IsNsfw,
		IsAiGenerated: req.IsAiGenerated,
		Tags:          req.Tags,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(artwork)
}

// UpdateArtwork handles PATCH /api/artworks/:id
func (s *Server) UpdateArtwork(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var req artworkRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	artwork, err := s.artworkService.UpdateArtwork(c.Context(), service.UpdateArtworkInput{
		CallerID:      userID,
		ArtworkID:     id,
		Title:         req.Title,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		IsNsfw:        req.IsNsfw,
		IsAiGenerated: req.IsAiGenerated,
		Tags:          req.Tags,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(artwork)
}

// DeleteArtwork handles DELETE /api/artworks/:id
func (s *Server) DeleteArtwork(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	if err := s.artworkService.DeleteArtwork(c.Context(), userID, id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
