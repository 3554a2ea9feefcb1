// Package service implements the application's domain logic on top of the
// repository layer: input validation, ownership checks, and cascade deletes.
package service

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"atelier/internal/middleware"
	"atelier/internal/models"
	"atelier/internal/observability"
	"atelier/internal/repository"
)

const (
	maxTitleLen       = 300
	maxDescriptionLen = 10000
	maxTagCount       = 25
	maxTagLen         = 50
)

// ArtworkService owns artwork CRUD, the ownership gate on mutation, and the
// artwork deletion cascade.
type ArtworkService struct {
	artworkRepo repository.ArtworkRepository
	galleryRepo repository.GalleryRepository
	commentRepo repository.CommentRepository
}

// CreateArtworkInput is the payload for creating an artwork.
type CreateArtworkInput struct {
	UserID        uint
	Title         string
	Description   string
	ImageURL      string
	IsNsfw        bool
	IsAiGenerated bool
	Tags          []string
}

// UpdateArtworkInput replaces an artwork's mutable fields wholesale.
type UpdateArtworkInput struct {
	CallerID      uint
	ArtworkID     string
	Title         string
	Description   string
	ImageURL      string
	IsNsfw        bool
	IsAiGenerated bool
	Tags          []string
}

// NewArtworkService creates a new ArtworkService.
func NewArtworkService(
	artworkRepo repository.ArtworkRepository,
	galleryRepo repository.GalleryRepository,
	commentRepo repository.CommentRepository,
) *ArtworkService {
	return &ArtworkService{
		artworkRepo: artworkRepo,
		galleryRepo: galleryRepo,
		commentRepo: commentRepo,
	}
}

func validateArtworkFields(title, imageURL string, tags []string) ([]string, error) {
	if strings.TrimSpace(title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if strings.TrimSpace(imageURL) == "" {
		return nil, models.NewValidationError("image_url is required")
	}
	if _, err := url.ParseRequestURI(imageURL); err != nil {
		return nil, models.NewValidationError("image_url must be a valid URL")
	}
	if len(tags) > maxTagCount {
		return nil, models.NewValidationError("Too many tags (max 25)")
	}
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if len(tag) > maxTagLen {
			return nil, models.NewValidationError("Tag too long (max 50 characters)")
		}
		cleaned = append(cleaned, tag)
	}
	return cleaned, nil
}

// CreateArtwork validates the input and persists a new artwork owned by the caller.
func (s *ArtworkService) CreateArtwork(ctx context.Context, in CreateArtworkInput) (*models.Artwork, error) {
	tags, err := validateArtworkFields(in.Title, in.ImageURL, in.Tags)
	if err != nil {
		return nil, err
	}
	if len(in.Description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 10000 characters)")
	}

	artwork := &models.Artwork{
		UserID:        in.UserID,
		Title:         in.Title,
		Description:   in.Description,
		ImageURL:      in.ImageURL,
		IsNsfw:        in.IsNsfw,
		IsAiGenerated: in.IsAiGenerated,
		Tags:          models.StringList(tags),
	}
	if err := s.artworkRepo.Create(ctx, artwork); err != nil {
		return nil, err
	}
	return artwork, nil
}

// GetArtwork fetches one artwork and bumps its view counter. The counter
// update is best-effort and never fails the read.
func (s *ArtworkService) GetArtwork(ctx context.Context, id string) (*models.Artwork, error) {
	artwork, err := s.artworkRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.artworkRepo.IncrementViews(ctx, id); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to increment artwork views",
			slog.String("artwork_id", id),
			slog.String("error", err.Error()),
		)
	}
	return artwork, nil
}

// ListArtworks returns artworks matching the visibility filter.
func (s *ArtworkService) ListArtworks(ctx context.Context, filter repository.ArtworkFilter, limit, offset int) ([]*models.Artwork, error) {
	return s.artworkRepo.List(ctx, filter, limit, offset)
}

// ListUserArtworks returns one user's artworks matching the visibility filter.
func (s *ArtworkService) ListUserArtworks(ctx context.Context, userID uint, filter repository.ArtworkFilter, limit, offset int) ([]*models.Artwork, error) {
	return s.artworkRepo.ListByUser(ctx, userID, filter, limit, offset)
}

// UpdateArtwork replaces the artwork's mutable fields. Only the owner may
// update; existence is checked before ownership so a missing artwork is
// reported as not found, not forbidden.
func (s *ArtworkService) UpdateArtwork(ctx context.Context, in UpdateArtworkInput) (*models.Artwork, error) {
	artwork, err := s.artworkRepo.GetByID(ctx, in.ArtworkID)
	if err != nil {
		return nil, err
	}
	if artwork.UserID != in.CallerID {
		return nil, models.NewForbiddenError("Not authorized to modify this artwork")
	}

	tags, err := validateArtworkFields(in.Title, in.ImageURL, in.Tags)
	if err != nil {
		return nil, err
	}
	if len(in.Description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 10000 characters)")
	}

	artwork.Title = in.Title
	artwork.Description = in.Description
	artwork.ImageURL = in.ImageURL
	artwork.IsNsfw = in.IsNsfw
	artwork.IsAiGenerated = in.IsAiGenerated
	artwork.Tags = models.StringList(tags)

	if err := s.artworkRepo.Update(ctx, artwork); err != nil {
		return nil, err
	}
	return artwork, nil
}

// DeleteArtwork removes an artwork after the ownership check, cascading to
// dependent rows first: comments, then gallery memberships, then the artwork
// itself. A failing dependent step is logged and tolerated so the primary
// deletion is never blocked by a missing dependent table.
func (s *ArtworkService) DeleteArtwork(ctx context.Context, callerID uint, artworkID string) error {
	artwork, err := s.artworkRepo.GetByID(ctx, artworkID)
	if err != nil {
		return err
	}
	if artwork.UserID != callerID {
		return models.NewForbiddenError("Not authorized to delete this artwork")
	}

	if err := s.commentRepo.DeleteByArtwork(ctx, artworkID); err != nil {
		observability.CascadeStepFailures.WithLabelValues("artwork", "comments").Inc()
		middleware.Logger.WarnContext(ctx, "artwork cascade: comment cleanup failed, continuing",
			slog.String("artwork_id", artworkID),
			slog.String("error", err.Error()),
		)
	}
	if err := s.galleryRepo.DeleteMembershipsForArtwork(ctx, artworkID); err != nil {
		observability.CascadeStepFailures.WithLabelValues("artwork", "memberships").Inc()
		middleware.Logger.WarnContext(ctx, "artwork cascade: membership cleanup failed, continuing",
			slog.String("artwork_id", artworkID),
			slog.String("error", err.Error()),
		)
	}

	return s.artworkRepo.Delete(ctx, artworkID)
}
