package server

import (
	"atelier/internal/models"
	"atelier/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseUintID(c, "id")
	if err != nil {
		return nil
	}

	user, getErr := s.userService.GetUser(c.Context(), id)
	if getErr != nil {
		return models.RespondWithError(c, mapServiceError(getErr), getErr)
	}

	return c.JSON(user)
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUser(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		DisplayName  string `json:"display_name"`
		Bio          string `json:"bio"`
		ProfileImage string `json:"profile_image"`
		BannerImage  string `json:"banner_image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		CallerID:     userID,
		UserID:       userID,
		DisplayName:  req.DisplayName,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
		BannerImage:  req.BannerImage,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(user)
}

// UpdatePreferences handles PATCH /api/users/:id/preferences
func (s *Server) UpdatePreferences(c *fiber.Ctx) error {
	callerID := c.Locals("userID").(uint)

	targetID, err := s.parseUintID(c, "id")
	if err != nil {
		return nil
	}
	if targetID != callerID {
		forbidden := models.NewForbiddenError("Not authorized to modify these preferences")
		return models.RespondWithError(c, fiber.StatusForbidden, forbidden)
	}

	var req struct {
		ShowNsfw        *bool `json:"show_nsfw"`
		ShowAiGenerated *bool `json:"show_ai_generated"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ShowNsfw == nil && req.ShowAiGenerated == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No preference fields provided"))
	}

	// Omitted fields keep their current value.
	current, loadErr := s.prefsResolver.Load(c.Context(), callerID)
	if loadErr != nil {
		return models.RespondWithError(c, mapServiceError(loadErr), loadErr)
	}
	if req.ShowNsfw != nil {
		current.ShowNsfw = *req.ShowNsfw
	}
	if req.ShowAiGenerated != nil {
		current.ShowAiGenerated = *req.ShowAiGenerated
	}

	if updateErr := s.prefsResolver.Update(c.Context(), callerID, current); updateErr != nil {
		return models.RespondWithError(c, mapServiceError(updateErr), updateErr)
	}

	return c.JSON(current)
}

// BanUser handles POST /api/admin/users/:id/ban
func (s *Server) BanUser(c *fiber.Ctx) error {
	return s.setUserBanned(c, true)
}

// UnbanUser handles POST /api/admin/users/:id/unban
func (s *Server) UnbanUser(c *fiber.Ctx) error {
	return s.setUserBanned(c, false)
}

func (s *Server) setUserBanned(c *fiber.Ctx, banned bool) error {
	id, err := s.parseUintID(c, "id")
	if err != nil {
		return nil
	}

	if setErr := s.userService.SetBanned(c.Context(), id, banned); setErr != nil {
		return models.RespondWithError(c, mapServiceError(setErr), setErr)
	}

	return c.JSON(fiber.Map{"id": id, "is_banned": banned})
}

// PromoteUser handles POST /api/admin/users/:id/promote
func (s *Server) PromoteUser(c *fiber.Ctx) error {
	return s.setUserAdmin(c, true)
}

// DemoteUser handles POST /api/admin/users/:id/demote
func (s *Server) DemoteUser(c *fiber.Ctx) error {
	return s.setUserAdmin(c, false)
}

func (s *Server) setUserAdmin(c *fiber.Ctx, admin bool) error {
	id, err := s.parseUintID(c, "id")
	if err != nil {
		return nil
	}

	if setErr := s.userService.SetAdmin(c.Context(), id, admin); setErr != nil {
		return models.RespondWithError(c, mapServiceError(setErr), setErr)
	}

	return c.JSON(fiber.Map{"id": id, "is_admin": admin})
}

// DeleteUser handles DELETE /api/admin/users/:id
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseUintID(c, "id")
	if err != nil {
		return nil
	}

	if delErr := s.userService.DeleteUser(c.Context(), id); delErr != nil {
		return models.RespondWithError(c, mapServiceError(delErr), delErr)
	}
	s.prefsResolver.Invalidate(c.Context(), id)

	return c.SendStatus(fiber.StatusNoContent)
}
