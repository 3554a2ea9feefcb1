// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gallery is a named collection of artworks curated by one user. The curator
// may include artworks owned by other users.
type Gallery struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsFeatured  bool      `gorm:"not null;default:false" json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate assigns a random ID when none was supplied.
func (g *Gallery) BeforeCreate(*gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// GalleryArtwork is a membership row linking one gallery to one artwork.
// The composite primary key guarantees at most one row per pair.
type GalleryArtwork struct {
	GalleryID string    `gorm:"type:uuid;primaryKey" json:"gallery_id"`
	ArtworkID string    `gorm:"type:uuid;primaryKey" json:"artwork_id"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`
}
