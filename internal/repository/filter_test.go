package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"atelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedArtworkGrid creates one artwork for each (nsfw, ai) combination with
// strictly decreasing ages so ordering assertions are deterministic.
func seedArtworkGrid(t *testing.T, repo ArtworkRepository, userID uint) {
	t.Helper()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	combos := []struct {
		nsfw bool
		ai   bool
	}{
		{false, false},
		{false, true},
		{true, false},
		{true, true},
	}
	for i, combo := range combos {
		artwork := &models.Artwork{
			UserID:        userID,
			Title:         fmt.Sprintf("nsfw=%t ai=%t", combo.nsfw, combo.ai),
			ImageURL:      "https://images.example/x.png",
			IsNsfw:        combo.nsfw,
			IsAiGenerated: combo.ai,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(context.Background(), artwork))
	}
}

func TestArtworkFilterCombinations(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewArtworkRepository(db)
	ctx := context.Background()
	seedArtworkGrid(t, repo, 1)

	tests := []struct {
		name     string
		filter   ArtworkFilter
		expected int
	}{
		{"zero value hides nsfw", ArtworkFilter{}, 2},
		{"permissive returns everything", Permissive(), 4},
		{"nsfw gate open is not a requirement", ArtworkFilter{ShowNsfw: true}, 4},
		{"ai true is exact match", ArtworkFilter{ShowNsfw: true, AiGenerated: boolPtr(true)}, 2},
		{"ai false is exact match", ArtworkFilter{ShowNsfw: true, AiGenerated: boolPtr(false)}, 2},
		{"conditions combine with and", ArtworkFilter{ShowNsfw: false, AiGenerated: boolPtr(true)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artworks, err := repo.List(ctx, tt.filter, 0, 0)
			require.NoError(t, err)
			assert.Len(t, artworks, tt.expected)

			for _, a := range artworks {
				if !tt.filter.ShowNsfw {
					assert.False(t, a.IsNsfw)
				}
				if tt.filter.AiGenerated != nil {
					assert.Equal(t, *tt.filter.AiGenerated, a.IsAiGenerated)
				}
			}
		})
	}
}

func TestArtworkListOrdering(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewArtworkRepository(db)
	ctx := context.Background()
	seedArtworkGrid(t, repo, 1)

	artworks, err := repo.List(ctx, Permissive(), 0, 0)
	require.NoError(t, err)
	require.Len(t, artworks, 4)
	for i := 1; i < len(artworks); i++ {
		assert.False(t, artworks[i].CreatedAt.After(artworks[i-1].CreatedAt), "expected newest first")
	}
}

func TestArtworkListPagination(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewArtworkRepository(db)
	ctx := context.Background()
	seedArtworkGrid(t, repo, 1)

	page1, err := repo.List(ctx, Permissive(), 3, 0)
	require.NoError(t, err)
	assert.Len(t, page1, 3)

	page2, err := repo.List(ctx, Permissive(), 3, 3)
	require.NoError(t, err)
	assert.Len(t, page2, 1)

	// Limit zero means unbounded, not "no rows".
	all, err := repo.List(ctx, Permissive(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestListByUserAppliesFilter(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewArtworkRepository(db)
	ctx := context.Background()
	seedArtworkGrid(t, repo, 1)
	seedArtworkGrid(t, repo, 2)

	mine, err := repo.ListByUser(ctx, 1, ArtworkFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, a := range mine {
		assert.Equal(t, uint(1), a.UserID)
		assert.False(t, a.IsNsfw)
	}
}
