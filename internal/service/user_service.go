package service

import (
	"context"
	"log/slog"
	"strings"

	"atelier/internal/middleware"
	"atelier/internal/models"
	"atelier/internal/repository"
)

const (
	maxDisplayNameLen = 100
	maxBioLen         = 2000
)

// UserService owns user profile reads and updates plus the admin-only
// moderation operations.
type UserService struct {
	userRepo    repository.UserRepository
	artworkRepo repository.ArtworkRepository
	galleryRepo repository.GalleryRepository
	commentRepo repository.CommentRepository
}

// UpdateProfileInput replaces a user's profile fields.
type UpdateProfileInput struct {
	CallerID     uint
	UserID       uint
	DisplayName  string
	Bio          string
	ProfileImage string
	BannerImage  string
}

// NewUserService creates a new UserService.
func NewUserService(
	userRepo repository.UserRepository,
	artworkRepo repository.ArtworkRepository,
	galleryRepo repository.GalleryRepository,
	commentRepo repository.CommentRepository,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		artworkRepo: artworkRepo,
		galleryRepo: galleryRepo,
		commentRepo: commentRepo,
	}
}

// GetUser fetches one user by ID.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers returns users, newest first.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// UpdateProfile replaces a user's profile fields. Users may only edit their
// own profile.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user.ID != in.CallerID {
		return nil, models.NewForbiddenError("Not authorized to modify this profile")
	}
	if len(in.DisplayName) > maxDisplayNameLen {
		return nil, models.NewValidationError("Display name too long (max 100 characters)")
	}
	if len(in.Bio) > maxBioLen {
		return nil, models.NewValidationError("Bio too long (max 2000 characters)")
	}

	user.DisplayName = strings.TrimSpace(in.DisplayName)
	user.Bio = in.Bio
	user.ProfileImage = in.ProfileImage
	user.BannerImage = in.BannerImage

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetBanned bans or unbans a user. Route middleware restricts this to admins.
func (s *UserService) SetBanned(ctx context.Context, userID uint, banned bool) error {
	return s.userRepo.SetBanned(ctx, userID, banned)
}

// SetAdmin grants or revokes admin. Route middleware restricts this to admins.
func (s *UserService) SetAdmin(ctx context.Context, userID uint, admin bool) error {
	return s.userRepo.SetAdmin(ctx, userID, admin)
}

// DeleteUser removes a user and their content. Each content cleanup step is
// logged and tolerated on failure so the user row is still removed.
func (s *UserService) DeleteUser(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	artworks, err := s.artworkRepo.ListByUser(ctx, userID, repository.Permissive(), 0, 0)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "user cascade: artwork listing failed, continuing",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("error", err.Error()),
		)
	}
	for _, artwork := range artworks {
		if err := s.commentRepo.DeleteByArtwork(ctx, artwork.ID); err != nil {
			middleware.Logger.WarnContext(ctx, "user cascade: comment cleanup failed, continuing",
				slog.String("artwork_id", artwork.ID),
				slog.String("error", err.Error()),
			)
		}
		if err := s.galleryRepo.DeleteMembershipsForArtwork(ctx, artwork.ID); err != nil {
			middleware.Logger.WarnContext(ctx, "user cascade: membership cleanup failed, continuing",
				slog.String("artwork_id", artwork.ID),
				slog.String("error", err.Error()),
			)
		}
		if err := s.artworkRepo.Delete(ctx, artwork.ID); err != nil {
			middleware.Logger.WarnContext(ctx, "user cascade: artwork delete failed, continuing",
				slog.String("artwork_id", artwork.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	galleries, err := s.galleryRepo.ListByUser(ctx, userID, 0, 0)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "user cascade: gallery listing failed, continuing",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("error", err.Error()),
		)
	}
	for _, gallery := range galleries {
		if err := s.galleryRepo.DeleteMembershipsForGallery(ctx, gallery.ID); err != nil {
			middleware.Logger.WarnContext(ctx, "user cascade: membership cleanup failed, continuing",
				slog.String("gallery_id", gallery.ID),
				slog.String("error", err.Error()),
			)
		}
		if err := s.galleryRepo.Delete(ctx, gallery.ID); err != nil {
			middleware.Logger.WarnContext(ctx, "user cascade: gallery delete failed, continuing",
				slog.String("gallery_id", gallery.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return s.userRepo.Delete(ctx, userID)
}
