// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"atelier/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var artTags = []string{
	"portrait", "landscape", "abstract", "watercolor", "oil", "digital",
	"pixel-art", "ink", "charcoal", "surreal", "minimal", "studyset",
	"fanart", "concept", "character", "environment", "still-life",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	defaults := models.DefaultPreferences()
	user := &models.User{
		Username:        fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		DisplayName:     gofakeit.Name(),
		Bio:             gofakeit.Sentence(10),
		ProfileImage:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		BannerImage:     fmt.Sprintf("https://picsum.photos/seed/%s/1200/300", gofakeit.UUID()),
		ShowNsfw:        defaults.ShowNsfw,
		ShowAiGenerated: defaults.ShowAiGenerated,
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildArtwork constructs an artwork without persisting it, so callers can
// batch inserts.
func (f *Factory) BuildArtwork(user *models.User, overrides ...func(*models.Artwork)) *models.Artwork {
	tagCount := f.rng.Intn(4) + 1
	tags := make(models.StringList, 0, tagCount)
	for len(tags) < tagCount {
		candidate := artTags[f.rng.Intn(len(artTags))]
		if !containsTag(tags, candidate) {
			tags = append(tags, candidate)
		}
	}

	artwork := &models.Artwork{
		UserID:        user.ID,
		Title:         gofakeit.Sentence(4),
		Description:   gofakeit.Paragraph(1, 3, 8, "\n"),
		ImageURL:      fmt.Sprintf("https://picsum.photos/seed/%s/1024/768", gofakeit.UUID()),
		IsNsfw:        f.rng.Float64() < f.opts.NsfwRatio,
		IsAiGenerated: f.rng.Float64() < f.opts.AiRatio,
		Tags:          tags,
		ViewCount:     f.rng.Intn(5000),
		CreatedAt:     f.randomPastTime(),
	}

	for _, override := range overrides {
		override(artwork)
	}
	return artwork
}

// CreateArtworksBatch persists multiple artworks in a single DB call.
func (f *Factory) CreateArtworksBatch(artworks []*models.Artwork) error {
	if len(artworks) == 0 {
		return nil
	}
	return f.db.Create(&artworks).Error
}

// CreateGallery constructs and persists a gallery for the given curator.
func (f *Factory) CreateGallery(user *models.User, overrides ...func(*models.Gallery)) (*models.Gallery, error) {
	gallery := &models.Gallery{
		UserID:      user.ID,
		Name:        fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), gofakeit.NounAbstract()),
		Description: gofakeit.Sentence(12),
		CreatedAt:   f.randomPastTime(),
	}

	for _, override := range overrides {
		override(gallery)
	}

	if err := f.db.Create(gallery).Error; err != nil {
		return nil, err
	}
	return gallery, nil
}

// CreateComment constructs and persists a comment by the given user.
func (f *Factory) CreateComment(user *models.User, artwork *models.Artwork) (*models.Comment, error) {
	comment := &models.Comment{
		UserID:    user.ID,
		ArtworkID: artwork.ID,
		Content:   gofakeit.Sentence(f.rng.Intn(12) + 3),
		CreatedAt: f.randomPastTime(),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// randomPastTime spreads timestamps over the configured window so listings
// look lived-in rather than created all at once.
func (f *Factory) randomPastTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().
		Add(-time.Duration(daysBack) * 24 * time.Hour).
		Add(-time.Duration(hoursBack) * time.Hour).
		Add(-time.Duration(minsBack) * time.Minute)
}

func containsTag(tags models.StringList, candidate string) bool {
	for _, t := range tags {
		if t == candidate {
			return true
		}
	}
	return false
}
