package server

import (
	"fmt"
	"net/http"
	"testing"

	"atelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGalleryMembershipFlow(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	collector, collectorToken := createTestUser(t, s, db, "collector", false)
	artist, _ := createTestUser(t, s, db, "artist", false)

	// Gallery owned by the collector, artwork owned by someone else: adding
	// other people's art to your own gallery is allowed.
	var gallery models.Gallery
	status := doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/galleries/", map[string]any{
		"name": "Favorites",
	}, collectorToken), &gallery)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, collector.ID, gallery.UserID)

	artwork := &models.Artwork{UserID: artist.ID, Title: "X", ImageURL: "https://x/1.png"}
	require.NoError(t, db.Create(artwork).Error)

	memberPath := fmt.Sprintf("/api/galleries/%s/artworks/%s", gallery.ID, artwork.ID)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, memberPath, nil, collectorToken), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var artworks []models.Artwork
	status = doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/galleries/"+gallery.ID+"/artworks", nil, ""), &artworks)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, artworks, 1)
	assert.Equal(t, artwork.ID, artworks[0].ID)

	// Adding the same artwork again is a no-op, not an error.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, memberPath, nil, collectorToken), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	status = doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/galleries/"+gallery.ID+"/artworks", nil, ""), &artworks)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, artworks, 1)

	// Remove the membership; the artwork itself is untouched.
	resp, err = app.Test(jsonRequest(t, http.MethodDelete, memberPath, nil, collectorToken), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	status = doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/galleries/"+gallery.ID+"/artworks", nil, ""), &artworks)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, artworks)

	status = doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/artworks/"+artwork.ID, nil, ""), nil)
	require.Equal(t, http.StatusOK, status)
}

func TestGalleryMembershipAuthz(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	owner, ownerToken := createTestUser(t, s, db, "owner", false)
	_, otherToken := createTestUser(t, s, db, "other", false)

	gallery := &models.Gallery{UserID: owner.ID, Name: "Mine"}
	require.NoError(t, db.Create(gallery).Error)
	artwork := &models.Artwork{UserID: owner.ID, Title: "X", ImageURL: "https://x/1.png"}
	require.NoError(t, db.Create(artwork).Error)

	memberPath := fmt.Sprintf("/api/galleries/%s/artworks/%s", gallery.ID, artwork.ID)

	// Only the gallery owner may add.
	var errResp models.ErrorResponse
	status := doJSON(t, app, jsonRequest(t, http.MethodPost, memberPath, nil, otherToken), &errResp)
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, models.CodeForbidden, errResp.Code)

	// A missing gallery yields not found before the ownership check.
	missingPath := fmt.Sprintf("/api/galleries/%s/artworks/%s", "no-such-gallery", artwork.ID)
	status = doJSON(t, app, jsonRequest(t, http.MethodPost, missingPath, nil, otherToken), &errResp)
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, models.CodeNotFound, errResp.Code)

	// A missing artwork yields not found after the ownership check passes.
	missingArtPath := fmt.Sprintf("/api/galleries/%s/artworks/%s", gallery.ID, "no-such-artwork")
	status = doJSON(t, app, jsonRequest(t, http.MethodPost, missingArtPath, nil, ownerToken), &errResp)
	require.Equal(t, http.StatusNotFound, status)
}

func TestDeleteGalleryCascadesMemberships(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	owner, ownerToken := createTestUser(t, s, db, "owner", false)

	gallery := &models.Gallery{UserID: owner.ID, Name: "Doomed"}
	require.NoError(t, db.Create(gallery).Error)
	artwork := &models.Artwork{UserID: owner.ID, Title: "Survivor", ImageURL: "https://x/1.png"}
	require.NoError(t, db.Create(artwork).Error)
	require.NoError(t, db.Create(&models.GalleryArtwork{GalleryID: gallery.ID, ArtworkID: artwork.ID}).Error)

	resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/api/galleries/"+gallery.ID, nil, ownerToken), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var memberships, galleries, artworks int64
	require.NoError(t, db.Model(&models.GalleryArtwork{}).Where("gallery_id = ?", gallery.ID).Count(&memberships).Error)
	require.NoError(t, db.Model(&models.Gallery{}).Where("id = ?", gallery.ID).Count(&galleries).Error)
	require.NoError(t, db.Model(&models.Artwork{}).Where("id = ?", artwork.ID).Count(&artworks).Error)
	assert.Zero(t, memberships)
	assert.Zero(t, galleries)
	assert.Equal(t, int64(1), artworks, "member artworks must survive gallery deletion")
}

func TestGetGalleryArtworksRespectsFilter(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	owner, _ := createTestUser(t, s, db, "owner", false)

	gallery := &models.Gallery{UserID: owner.ID, Name: "Mixed"}
	require.NoError(t, db.Create(gallery).Error)

	safe := &models.Artwork{UserID: owner.ID, Title: "safe", ImageURL: "https://x/1.png"}
	nsfw := &models.Artwork{UserID: owner.ID, Title: "nsfw", ImageURL: "https://x/2.png", IsNsfw: true}
	require.NoError(t, db.Create(safe).Error)
	require.NoError(t, db.Create(nsfw).Error)
	require.NoError(t, db.Create(&models.GalleryArtwork{GalleryID: gallery.ID, ArtworkID: safe.ID}).Error)
	require.NoError(t, db.Create(&models.GalleryArtwork{GalleryID: gallery.ID, ArtworkID: nsfw.ID}).Error)

	var artworks []models.Artwork
	status := doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/galleries/"+gallery.ID+"/artworks?isNsfw=false", nil, ""), &artworks)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, artworks, 1)
	assert.Equal(t, "safe", artworks[0].Title)
}

func TestGetGalleryMissing(t *testing.T) {
	t.Parallel()

	_, app, _ := setupTestServer(t)

	status := doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/galleries/no-such-id", nil, ""), nil)
	require.Equal(t, http.StatusNotFound, status)
}
