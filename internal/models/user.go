// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered member of the Atelier gallery.
//
// ShowNsfw and ShowAiGenerated are the authoritative content-visibility
// preferences; clients keep a cached copy that the prefs resolver reconciles.
type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Username        string    `gorm:"unique;not null" json:"username"`
	Password        string    `gorm:"not null" json:"-"`
	DisplayName     string    `json:"display_name"`
	Bio             string    `json:"bio"`
	ProfileImage    string    `json:"profile_image"`
	BannerImage     string    `json:"banner_image"`
	IsAdmin         bool      `gorm:"not null;default:false" json:"is_admin"`
	IsBanned        bool      `gorm:"not null;default:false" json:"is_banned"`
	ShowNsfw        bool      `gorm:"not null;default:true" json:"show_nsfw"`
	ShowAiGenerated bool      `gorm:"not null;default:true" json:"show_ai_generated"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Preferences is the content-visibility slice of a User record.
type Preferences struct {
	ShowNsfw        bool `json:"show_nsfw"`
	ShowAiGenerated bool `json:"show_ai_generated"`
}

// DefaultPreferences returns the permissive defaults new accounts start with.
func DefaultPreferences() Preferences {
	return Preferences{ShowNsfw: true, ShowAiGenerated: true}
}
