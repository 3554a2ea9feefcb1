package service

import (
	"context"
	"strings"

	"atelier/internal/models"
	"atelier/internal/repository"
)

const maxCommentLen = 2000

// CommentService owns comment creation and listing. Comments hang off
// artworks; creating one against a missing artwork fails with not found.
type CommentService struct {
	commentRepo repository.CommentRepository
	artworkRepo repository.ArtworkRepository
}

// CreateCommentInput is the payload for posting a comment on an artwork.
type CreateCommentInput struct {
	UserID    uint
	ArtworkID string
	Content   string
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, artworkRepo repository.ArtworkRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, artworkRepo: artworkRepo}
}

// CreateComment validates and persists a comment. The returned comment has
// its author preloaded.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Content too long (max 2000 characters)")
	}
	if _, err := s.artworkRepo.GetByID(ctx, in.ArtworkID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		UserID:    in.UserID,
		ArtworkID: in.ArtworkID,
		Content:   in.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	// Reload so the response carries the author, matching list output.
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns an artwork's comments, newest first, authors preloaded.
func (s *CommentService) ListComments(ctx context.Context, artworkID string) ([]*models.Comment, error) {
	if _, err := s.artworkRepo.GetByID(ctx, artworkID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByArtwork(ctx, artworkID)
}
