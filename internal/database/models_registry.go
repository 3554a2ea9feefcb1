package database

import "atelier/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Artwork{},
		&models.Gallery{},
		&models.GalleryArtwork{},
		&models.Comment{},
	}
}
