package server

import (
	"fmt"
	"net/http"
	"testing"

	"atelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtworkLifecycle(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	owner, ownerToken := createTestUser(t, s, db, "owner", false)
	_, otherToken := createTestUser(t, s, db, "other", false)

	// Create
	var created models.Artwork
	status := doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/artworks/", map[string]any{
		"title":           "Neon Fox",
		"image_url":       "https://x/1.png",
		"is_ai_generated": true,
		"tags":            []string{"fox", "neon"},
	}, ownerToken), &created)
	require.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, owner.ID, created.UserID)
	assert.Equal(t, "Neon Fox", created.Title)
	assert.True(t, created.IsAiGenerated)
	assert.False(t, created.IsNsfw)
	assert.Equal(t, models.StringList{"fox", "neon"}, created.Tags)
	assert.False(t, created.CreatedAt.IsZero())

	// Read back
	var fetched models.Artwork
	status = doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/artworks/"+created.ID, nil, ""), &fetched)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Title, fetched.Title)

	// Delete as a different user fails and changes nothing
	status = doJSON(t, app, jsonRequest(t, http.MethodDelete, "/api/artworks/"+created.ID, nil, otherToken), nil)
	require.Equal(t, http.StatusForbidden, status)

	status = doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/artworks/"+created.ID, nil, ""), &fetched)
	require.Equal(t, http.StatusOK, status)

	// Delete as the owner succeeds
	req := jsonRequest(t, http.MethodDelete, "/api/artworks/"+created.ID, nil, ownerToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	status = doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/artworks/"+created.ID, nil, ""), nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestUpdateArtworkReplacesMutableFields(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	owner, ownerToken := createTestUser(t, s, db, "owner", false)

	artwork := &models.Artwork{
		UserID:        owner.ID,
		Title:         "Old",
		Description:   "old description",
		ImageURL:      "https://x/old.png",
		IsNsfw:        true,
		IsAiGenerated: true,
		Tags:          models.StringList{"old"},
	}
	require.NoError(t, db.Create(artwork).Error)

	var updated models.Artwork
	status := doJSON(t, app, jsonRequest(t, http.MethodPatch, "/api/artworks/"+artwork.ID, map[string]any{
		"title":     "New",
		"image_url": "https://x/new.png",
	}, ownerToken), &updated)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "", updated.Description)
	assert.False(t, updated.IsNsfw)
	assert.False(t, updated.IsAiGenerated)
	assert.Empty(t, updated.Tags)
}

func TestUpdateArtworkMissingIsNotFoundNotForbidden(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	_, token := createTestUser(t, s, db, "someone", false)

	var errResp models.ErrorResponse
	status := doJSON(t, app, jsonRequest(t, http.MethodPatch, "/api/artworks/no-such-id", map[string]any{
		"title":     "T",
		"image_url": "https://x/1.png",
	}, token), &errResp)
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, models.CodeNotFound, errResp.Code)
}

func TestGetArtworkIncrementsViewCount(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	owner, _ := createTestUser(t, s, db, "owner", false)

	artwork := &models.Artwork{UserID: owner.ID, Title: "Busy", ImageURL: "https://x/1.png"}
	require.NoError(t, db.Create(artwork).Error)

	for i := 0; i < 3; i++ {
		status := doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/artworks/"+artwork.ID, nil, ""), nil)
		require.Equal(t, http.StatusOK, status)
	}

	var reloaded models.Artwork
	require.NoError(t, db.First(&reloaded, "id = ?", artwork.ID).Error)
	assert.Equal(t, 3, reloaded.ViewCount)
}

func TestListArtworksFilterSemantics(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	owner, _ := createTestUser(t, s, db, "owner", false)

	// One artwork per (isNsfw, isAiGenerated) combination.
	for _, combo := range []struct{ nsfw, ai bool }{
		{false, false}, {false, true}, {true, false}, {true, true},
	} {
		artwork := &models.Artwork{
			UserID:        owner.ID,
			Title:         fmt.Sprintf("nsfw=%v ai=%v", combo.nsfw, combo.ai),
			ImageURL:      "https://x/1.png",
			IsNsfw:        combo.nsfw,
			IsAiGenerated: combo.ai,
		}
		require.NoError(t, db.Create(artwork).Error)
	}

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"no filters returns everything", "", 4},
		{"nsfw gate closed", "?isNsfw=false", 2},
		{"nsfw gate open", "?isNsfw=true", 4},
		{"ai exact true with default gate", "?isAiGenerated=true", 1},
		{"ai exact false with default gate", "?isAiGenerated=false", 1},
		{"gate open ai exact false", "?isNsfw=true&isAiGenerated=false", 2},
		{"gate open ai exact true", "?isNsfw=true&isAiGenerated=true", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var artworks []models.Artwork
			status := doJSON(t, app, jsonRequest(t, http.MethodGet, "/api/artworks/"+tt.query, nil, ""), &artworks)
			require.Equal(t, http.StatusOK, status)
			assert.Len(t, artworks, tt.want)
		})
	}
}

func TestListUserArtworksAppliesSameFilter(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	owner, _ := createTestUser(t, s, db, "owner", false)
	other, _ := createTestUser(t, s, db, "other", false)

	require.NoError(t, db.Create(&models.Artwork{UserID: owner.ID, Title: "safe", ImageURL: "https://x/1.png"}).Error)
	require.NoError(t, db.Create(&models.Artwork{UserID: owner.ID, Title: "nsfw", ImageURL: "https://x/2.png", IsNsfw: true}).Error)
	require.NoError(t, db.Create(&models.Artwork{UserID: other.ID, Title: "elsewhere", ImageURL: "https://x/3.png"}).Error)

	var artworks []models.Artwork
	path := fmt.Sprintf("/api/users/%d/artworks?isNsfw=false", owner.ID)
	status := doJSON(t, app, jsonRequest(t, http.MethodGet, path, nil, ""), &artworks)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, artworks, 1)
	assert.Equal(t, "safe", artworks[0].Title)
}

func TestCreateArtworkValidation(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	_, token := createTestUser(t, s, db, "creator", false)

	var errResp models.ErrorResponse
	status := doJSON(t, app, jsonRequest(t, http.MethodPost, "/api/artworks/", map[string]any{
		"image_url": "https://x/1.png",
	}, token), &errResp)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, models.CodeValidation, errResp.Code)

	// Nothing was persisted.
	var count int64
	require.NoError(t, db.Model(&models.Artwork{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteArtworkCascadesCommentsAndMemberships(t *testing.T) {
	t.Parallel()

	s, app, db := setupTestServer(t)
	owner, ownerToken := createTestUser(t, s, db, "owner", false)

	artwork := &models.Artwork{UserID: owner.ID, Title: "Doomed", ImageURL: "https://x/1.png"}
	require.NoError(t, db.Create(artwork).Error)
	gallery := &models.Gallery{UserID: owner.ID, Name: "Keep"}
	require.NoError(t, db.Create(gallery).Error)
	require.NoError(t, db.Create(&models.GalleryArtwork{GalleryID: gallery.ID, ArtworkID: artwork.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{UserID: owner.ID, ArtworkID: artwork.ID, Content: "bye"}).Error)

	req := jsonRequest(t, http.MethodDelete, "/api/artworks/"+artwork.ID, nil, ownerToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var comments, memberships, artworks int64
	require.NoError(t, db.Model(&models.Comment{}).Where("artwork_id = ?", artwork.ID).Count(&comments).Error)
	require.NoError(t, db.Model(&models.GalleryArtwork{}).Where("artwork_id = ?", artwork.ID).Count(&memberships).Error)
	require.NoError(t, db.Model(&models.Artwork{}).Where("id = ?", artwork.ID).Count(&artworks).Error)
	assert.Zero(t, comments)
	assert.Zero(t, memberships)
	assert.Zero(t, artworks)

	// The gallery itself survives the cascade.
	var galleries int64
	require.NoError(t, db.Model(&models.Gallery{}).Where("id = ?", gallery.ID).Count(&galleries).Error)
	assert.Equal(t, int64(1), galleries)
}
