package service

import (
	"context"
	"log/slog"
	"strings"

	"atelier/internal/middleware"
	"atelier/internal/models"
	"atelier/internal/observability"
	"atelier/internal/repository"
)

const maxGalleryNameLen = 200

// GalleryService owns gallery CRUD and membership management.
type GalleryService struct {
	galleryRepo repository.GalleryRepository
	artworkRepo repository.ArtworkRepository
}

// CreateGalleryInput is the payload for creating a gallery.
type CreateGalleryInput struct {
	UserID      uint
	Name        string
	Description string
}

// NewGalleryService creates a new GalleryService.
func NewGalleryService(galleryRepo repository.GalleryRepository, artworkRepo repository.ArtworkRepository) *GalleryService {
	return &GalleryService{galleryRepo: galleryRepo, artworkRepo: artworkRepo}
}

// CreateGallery validates the input and persists a new gallery owned by the caller.
func (s *GalleryService) CreateGallery(ctx context.Context, in CreateGalleryInput) (*models.Gallery, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if len(in.Name) > maxGalleryNameLen {
		return nil, models.NewValidationError("Name too long (max 200 characters)")
	}
	if len(in.Description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 10000 characters)")
	}

	gallery := &models.Gallery{
		UserID:      in.UserID,
		Name:        in.Name,
		Description: in.Description,
	}
	if err := s.galleryRepo.Create(ctx, gallery); err != nil {
		return nil, err
	}
	return gallery, nil
}

// GetGallery fetches one gallery by ID.
func (s *GalleryService) GetGallery(ctx context.Context, id string) (*models.Gallery, error) {
	return s.galleryRepo.GetByID(ctx, id)
}

// ListGalleries returns all galleries, newest first.
func (s *GalleryService) ListGalleries(ctx context.Context, limit, offset int) ([]*models.Gallery, error) {
	return s.galleryRepo.List(ctx, limit, offset)
}

// ListUserGalleries returns one user's galleries.
func (s *GalleryService) ListUserGalleries(ctx context.Context, userID uint, limit, offset int) ([]*models.Gallery, error) {
	return s.galleryRepo.ListByUser(ctx, userID, limit, offset)
}

// DeleteGallery removes a gallery after the ownership check. Memberships are
// cleaned up first; a failure there is logged and tolerated so the gallery
// row is still removed.
func (s *GalleryService) DeleteGallery(ctx context.Context, callerID uint, galleryID string) error {
	gallery, err := s.galleryRepo.GetByID(ctx, galleryID)
	if err != nil {
		return err
	}
	if gallery.UserID != callerID {
		return models.NewForbiddenError("Not authorized to delete this gallery")
	}

	if err := s.galleryRepo.DeleteMembershipsForGallery(ctx, galleryID); err != nil {
		observability.CascadeStepFailures.WithLabelValues("gallery", "memberships").Inc()
		middleware.Logger.WarnContext(ctx, "gallery cascade: membership cleanup failed, continuing",
			slog.String("gallery_id", galleryID),
			slog.String("error", err.Error()),
		)
	}

	return s.galleryRepo.Delete(ctx, galleryID)
}

// AddArtwork links an artwork into a gallery. The gallery must exist and be
// owned by the caller; the artwork must exist. Adding an artwork that is
// already in the gallery is a no-op.
func (s *GalleryService) AddArtwork(ctx context.Context, callerID uint, galleryID, artworkID string) error {
	gallery, err := s.galleryRepo.GetByID(ctx, galleryID)
	if err != nil {
		return err
	}
	if gallery.UserID != callerID {
		return models.NewForbiddenError("Not authorized to modify this gallery")
	}
	if _, err := s.artworkRepo.GetByID(ctx, artworkID); err != nil {
		return err
	}
	return s.galleryRepo.AddArtwork(ctx, galleryID, artworkID)
}

// RemoveArtwork unlinks an artwork from a gallery after the ownership check.
// Removing an artwork that is not in the gallery is a no-op.
func (s *GalleryService) RemoveArtwork(ctx context.Context, callerID uint, galleryID, artworkID string) error {
	gallery, err := s.galleryRepo.GetByID(ctx, galleryID)
	if err != nil {
		return err
	}
	if gallery.UserID != callerID {
		return models.NewForbiddenError("Not authorized to modify this gallery")
	}
	return s.galleryRepo.RemoveArtwork(ctx, galleryID, artworkID)
}

// ListGalleryArtworks returns the artworks in a gallery, filtered by the
// caller's visibility preferences, in the order they were added.
func (s *GalleryService) ListGalleryArtworks(ctx context.Context, galleryID string, filter repository.ArtworkFilter) ([]*models.Artwork, error) {
	if _, err := s.galleryRepo.GetByID(ctx, galleryID); err != nil {
		return nil, err
	}
	return s.galleryRepo.ListArtworks(ctx, galleryID, filter)
}
