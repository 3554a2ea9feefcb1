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

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByArtwork(ctx context.Context, artworkID string) ([]*models.Comment, error)
	DeleteByArtwork(ctx context.Context, artworkID string) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	defer observability.TrackQuery("create", "comments")()

	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.ArtworkCommentsKey(comment.ArtworkID))
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, err
	}
	return &comment, nil
}

// ListByArtwork returns comments newest first with the author preloaded.
func (r *commentRepository) ListByArtwork(ctx context.Context, artworkID string) ([]*models.Comment, error) {
	defer observability.TrackQuery("list_by_artwork", "comments")()

	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("artwork_id = ?", artworkID).
		Order("created_at desc, id desc").
		Find(&comments).Error
	return comments, err
}

// DeleteByArtwork removes every comment referencing the artwork. Used only by
// the artwork deletion cascade; comments have no standalone delete path.
func (r *commentRepository) DeleteByArtwork(ctx context.Context, artworkID string) error {
	defer observability.TrackQuery("delete_by_artwork", "comments")()

	if err := r.db.WithContext(ctx).
		Where("artwork_id = ?", artworkID).
		Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.ArtworkCommentsKey(artworkID))
	return nil
}
