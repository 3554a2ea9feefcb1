// Package models contains data structures for the application's domain models.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList stores an ordered list of strings as a JSON text column.
// Order is preserved but carries no meaning for filtering.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", src)
	}
}

// Artwork is a single uploaded piece. IDs are random UUIDs rather than
// sequential integers so artwork URLs cannot be enumerated.
type Artwork struct {
	ID            string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	Title         string     `gorm:"not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	ImageURL      string     `gorm:"not null" json:"image_url"`
	IsNsfw        bool       `gorm:"not null;default:false;index" json:"is_nsfw"`
	IsAiGenerated bool       `gorm:"not null;default:false;index" json:"is_ai_generated"`
	Tags          StringList `gorm:"type:text" json:"tags"`
	ViewCount     int        `gorm:"not null;default:0" json:"view_count"`
	LikeCount     int        `gorm:"not null;default:0" json:"like_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// BeforeCreate assigns a random ID when none was supplied.
func (a *Artwork) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
