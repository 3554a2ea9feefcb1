// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"atelier/internal/cache"
	"atelier/internal/models"
	"atelier/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GalleryRepository defines persistence operations for galleries and their
// membership rows.
type GalleryRepository interface {
	Create(ctx context.Context, gallery *models.Gallery) error
	GetByID(ctx context.Context, id string) (*models.Gallery, error)
	List(ctx context.Context, limit, offset int) ([]*models.Gallery, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Gallery, error)
	Delete(ctx context.Context, id string) error

	AddArtwork(ctx context.Context, galleryID, artworkID string) error
	RemoveArtwork(ctx context.Context, galleryID, artworkID string) error
	ListArtworks(ctx context.Context, galleryID string, filter ArtworkFilter) ([]*models.Artwork, error)
	DeleteMembershipsForGallery(ctx context.Context, galleryID string) error
	DeleteMembershipsForArtwork(ctx context.Context, artworkID string) error
}

type galleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository returns a new GalleryRepository implementation.
func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) Create(ctx context.Context, gallery *models.Gallery) error {
	defer observability.TrackQuery("create", "galleries")()
	return r.db.WithContext(ctx).Create(gallery).Error
}

func (r *galleryRepository) GetByID(ctx context.Context, id string) (*models.Gallery, error) {
	var gallery models.Gallery
	key := cache.GalleryKey(id)

	err := cache.Aside(ctx, key, &gallery, cache.GalleryTTL, func() error {
		if err := r.db.WithContext(ctx).Where("id = ?", id).First(&gallery).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Gallery", id)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &gallery, nil
}

func (r *galleryRepository) List(ctx context.Context, limit, offset int) ([]*models.Gallery, error) {
	defer observability.TrackQuery("list", "galleries")()

	var galleries []*models.Gallery
	err := r.db.WithContext(ctx).
		Scopes(paginate(limit, offset)).
		Order("created_at DESC").
		Find(&galleries).Error
	return galleries, err
}

func (r *galleryRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Gallery, error) {
	defer observability.TrackQuery("list_by_user", "galleries")()

	var galleries []*models.Gallery
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Scopes(paginate(limit, offset)).
		Order("created_at DESC").
		Find(&galleries).Error
	return galleries, err
}

func (r *galleryRepository) Delete(ctx context.Context, id string) error {
	defer observability.TrackQuery("delete", "galleries")()

	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Gallery{}).Error; err != nil {
		return err
	}
	cache.InvalidateGallery(ctx, id)
	return nil
}

// AddArtwork inserts a membership row. Adding the same artwork twice is
// idempotent: the composite primary key plus ON CONFLICT DO NOTHING keeps at
// most one row per (gallery, artwork) pair even under concurrent requests.
func (r *galleryRepository) AddArtwork(ctx context.Context, galleryID, artworkID string) error {
	defer observability.TrackQuery("add_artwork", "gallery_artworks")()

	membership := &models.GalleryArtwork{GalleryID: galleryID, ArtworkID: artworkID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(membership).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Row already exists; treat as success.
			err = nil
		}
	}
	if err == nil {
		cache.Invalidate(ctx, cache.GalleryArtworksKey(galleryID))
	}
	return err
}

func (r *galleryRepository) RemoveArtwork(ctx context.Context, galleryID, artworkID string) error {
	defer observability.TrackQuery("remove_artwork", "gallery_artworks")()

	err := r.db.WithContext(ctx).
		Where("gallery_id = ? AND artwork_id = ?", galleryID, artworkID).
		Delete(&models.GalleryArtwork{}).Error
	if err == nil {
		cache.Invalidate(ctx, cache.GalleryArtworksKey(galleryID))
	}
	return err
}

// ListArtworks resolves membership rows to artwork entities with an inner
// join, ordered by when they were added to the gallery.
func (r *galleryRepository) ListArtworks(ctx context.Context, galleryID string, filter ArtworkFilter) ([]*models.Artwork, error) {
	defer observability.TrackQuery("list_artworks", "gallery_artworks")()

	var artworks []*models.Artwork
	err := r.db.WithContext(ctx).
		Model(&models.Artwork{}).
		Joins("INNER JOIN gallery_artworks ON gallery_artworks.artwork_id = artworks.id").
		Where("gallery_artworks.gallery_id = ?", galleryID).
		Scopes(filter.Scope()).
		Order("gallery_artworks.added_at").
		Find(&artworks).Error
	return artworks, err
}

func (r *galleryRepository) DeleteMembershipsForGallery(ctx context.Context, galleryID string) error {
	defer observability.TrackQuery("delete_memberships", "gallery_artworks")()

	err := r.db.WithContext(ctx).
		Where("gallery_id = ?", galleryID).
		Delete(&models.GalleryArtwork{}).Error
	if err == nil {
		cache.Invalidate(ctx, cache.GalleryArtworksKey(galleryID))
	}
	return err
}

func (r *galleryRepository) DeleteMembershipsForArtwork(ctx context.Context, artworkID string) error {
	defer observability.TrackQuery("delete_memberships", "gallery_artworks")()

	return r.db.WithContext(ctx).
		Where("artwork_id = ?", artworkID).
		Delete(&models.GalleryArtwork{}).Error
}
