// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"atelier/internal/cache"
	"atelier/internal/models"
	"atelier/internal/observability"

	"gorm.io/gorm"
)

// ArtworkRepository defines persistence operations for artworks.
type ArtworkRepository interface {
	Create(ctx context.Context, artwork *models.Artwork) error
	GetByID(ctx context.Context, id string) (*models.Artwork, error)
	List(ctx context.Context, filter ArtworkFilter, limit, offset int) ([]*models.Artwork, error)
	ListByUser(ctx context.Context, userID uint, filter ArtworkFilter, limit, offset int) ([]*models.Artwork, error)
	Update(ctx context.Context, artwork *models.Artwork) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
}

type artworkRepository struct {
	db *gorm.DB
}

// NewArtworkRepository returns a new ArtworkRepository implementation.
func NewArtworkRepository(db *gorm.DB) ArtworkRepository {
	return &artworkRepository{db: db}
}

func (r *artworkRepository) Create(ctx context.Context, artwork *models.Artwork) error {
	defer observability.TrackQuery("create", "artworks")()
	return r.db.WithContext(ctx).Create(artwork).Error
}

func (r *artworkRepository) GetByID(ctx context.Context, id string) (*models.Artwork, error) {
	var artwork models.Artwork
	key := cache.ArtworkKey(id)

	err := cache.Aside(ctx, key, &artwork, cache.ArtworkTTL, func() error {
		if err := r.db.WithContext(ctx).Where("id = ?", id).First(&artwork).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Artwork", id)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &artwork, nil
}

func (r *artworkRepository) List(ctx context.Context, filter ArtworkFilter, limit, offset int) ([]*models.Artwork, error) {
	defer observability.TrackQuery("list", "artworks")()

	var artworks []*models.Artwork
	err := r.db.WithContext(ctx).
		Scopes(filter.Scope(), paginate(limit, offset)).
		Order("created_at DESC").
		Find(&artworks).Error
	return artworks, err
}

func (r *artworkRepository) ListByUser(ctx context.Context, userID uint, filter ArtworkFilter, limit, offset int) ([]*models.Artwork, error) {
	defer observability.TrackQuery("list_by_user", "artworks")()

	var artworks []*models.Artwork
	err := r.db.WithContext(ctx).
		Scopes(filter.Scope(), paginate(limit, offset)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&artworks).Error
	return artworks, err
}

func (r *artworkRepository) Update(ctx context.Context, artwork *models.Artwork) error {
	defer observability.TrackQuery("update", "artworks")()

	if err := r.db.WithContext(ctx).Save(artwork).Error; err != nil {
		return err
	}
	cache.InvalidateArtwork(ctx, artwork.ID)
	return nil
}

func (r *artworkRepository) Delete(ctx context.Context, id string) error {
	defer observability.TrackQuery("delete", "artworks")()

	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Artwork{}).Error; err != nil {
		return err
	}
	cache.InvalidateArtwork(ctx, id)
	return nil
}

// IncrementViews bumps the view counter in a single UPDATE so concurrent
// detail fetches do not lose counts.
func (r *artworkRepository) IncrementViews(ctx context.Context, id string) error {
	defer observability.TrackQuery("increment_views", "artworks")()

	err := r.db.WithContext(ctx).
		Model(&models.Artwork{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err == nil {
		cache.Invalidate(ctx, cache.ArtworkKey(id))
	}
	return err
}
