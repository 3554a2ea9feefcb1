// Package server contains the HTTP handlers and routing for the application's API.
package server

import (
	"context"
	"errors"
	"strconv"

	"atelier/internal/models"
	"atelier/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseUintID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseUintID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// mapServiceError translates an AppError code into an HTTP status.
func mapServiceError(err error) int {
	switch models.ErrorCode(err) {
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeValidation:
		return fiber.StatusBadRequest
	case models.CodeForbidden:
		return fiber.StatusForbidden
	case models.CodeUnauthenticated:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// buildFilter assembles the artwork visibility filter for a request.
//
// Explicit query parameters take precedence: isNsfw permits NSFW when true
// and hides it when false or present-but-empty; isAiGenerated restricts to
// exactly the given value. When neither parameter is present, an
// authenticated caller gets their stored preferences and an anonymous caller
// gets an unrestricted listing.
func (s *Server) buildFilter(c *fiber.Ctx) repository.ArtworkFilter {
	nsfwParam := c.Query("isNsfw")
	aiParam := c.Query("isAiGenerated")

	if nsfwParam == "" && aiParam == "" {
		if userID, ok := s.optionalUserID(c); ok {
			return s.preferenceFilter(c.Context(), userID)
		}
		return repository.Permissive()
	}

	filter := repository.ArtworkFilter{}
	if nsfwParam != "" {
		if v, err := strconv.ParseBool(nsfwParam); err == nil {
			filter.ShowNsfw = v
		}
	}
	if aiParam != "" {
		if v, err := strconv.ParseBool(aiParam); err == nil {
			filter.AiGenerated = &v
		}
	}
	return filter
}

// preferenceFilter translates a user's stored preferences into a filter.
// ShowAiGenerated true means no AI restriction; false hides AI works.
func (s *Server) preferenceFilter(ctx context.Context, userID uint) repository.ArtworkFilter {
	p, err := s.prefsResolver.Load(ctx, userID)
	if err != nil {
		return repository.Permissive()
	}
	filter := repository.ArtworkFilter{ShowNsfw: p.ShowNsfw}
	if !p.ShowAiGenerated {
		hide := false
		filter.AiGenerated = &hide
	}
	return filter
}

func (s *Server) isAdminByUserID(ctx context.Context, userID uint) (bool, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Select("is_admin").First(&user, userID).Error; err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}

func (s *Server) isBannedByUserID(ctx context.Context, userID uint) (bool, error) {
	if s.db == nil {
		return false, nil
	}
	var user models.User
	if err := s.db.WithContext(ctx).Select("is_banned").First(&user, userID).Error; err != nil {
		return false, err
	}
	return user.IsBanned, nil
}
