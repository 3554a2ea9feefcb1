// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Comment is a remark left on an artwork. Comments have no standalone edit or
// delete path; they disappear only when the artwork is deleted.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ArtworkID string    `gorm:"type:uuid;not null;index" json:"artwork_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
