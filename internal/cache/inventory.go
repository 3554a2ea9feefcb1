package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix            = "user:%d"
	ArtworkKeyPrefix         = "artwork:%s"
	GalleryKeyPrefix         = "gallery:%s"
	GalleryArtworksKeyPrefix = "gallery:%s:artworks"
	ArtworkCommentsPrefix    = "artwork:%s:comments"
	PreferencesKeyPrefix     = "prefs:%d"
)

const (
	UserTTL        = 5 * time.Minute
	ArtworkTTL     = 10 * time.Minute
	GalleryTTL     = 10 * time.Minute
	CommentsTTL    = 2 * time.Minute
	PreferencesTTL = 0 // no expiry; prefs cache is invalidated explicitly
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ArtworkKey(artworkID string) string {
	return fmt.Sprintf(ArtworkKeyPrefix, artworkID)
}

func GalleryKey(galleryID string) string {
	return fmt.Sprintf(GalleryKeyPrefix, galleryID)
}

func GalleryArtworksKey(galleryID string) string {
	return fmt.Sprintf(GalleryArtworksKeyPrefix, galleryID)
}

func ArtworkCommentsKey(artworkID string) string {
	return fmt.Sprintf(ArtworkCommentsPrefix, artworkID)
}

func PreferencesKey(userID uint) string {
	return fmt.Sprintf(PreferencesKeyPrefix, userID)
}

// Invalidate removes a key; missing client or key is a no-op.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateArtwork(ctx context.Context, artworkID string) {
	Invalidate(ctx, ArtworkKey(artworkID))
	Invalidate(ctx, ArtworkCommentsKey(artworkID))
}

func InvalidateGallery(ctx context.Context, galleryID string) {
	Invalidate(ctx, GalleryKey(galleryID))
	Invalidate(ctx, GalleryArtworksKey(galleryID))
}
