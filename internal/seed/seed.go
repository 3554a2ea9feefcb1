package seed

import (
	"fmt"
	"log"
	"os"

	"atelier/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	NumArtworks  int
	NumGalleries int
	ShouldClean  bool
	SkipBcrypt   bool
	// NsfwRatio and AiRatio control how often generated artworks carry the
	// respective flag. Both default to a small fraction when zero.
	NsfwRatio float64
	AiRatio   float64
	// MaxDays bounds how far in the past generated timestamps spread.
	MaxDays int
}

// Preset is a named seeding profile loadable from a YAML file.
type Preset struct {
	Name         string  `yaml:"name"`
	Users        int     `yaml:"users"`
	Artworks     int     `yaml:"artworks"`
	Galleries    int     `yaml:"galleries"`
	NsfwRatio    float64 `yaml:"nsfw_ratio"`
	AiRatio      float64 `yaml:"ai_ratio"`
	CommentsPer  int     `yaml:"comments_per_artwork"`
	AdminAccount string  `yaml:"admin_account"`
}

// PresetFile is the top-level structure of a preset YAML document.
type PresetFile struct {
	Presets []Preset `yaml:"presets"`
}

// LoadPresets parses a YAML preset file.
func LoadPresets(path string) (*PresetFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset file: %w", err)
	}
	var file PresetFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse preset file: %w", err)
	}
	return &file, nil
}

// Find returns the preset with the given name.
func (pf *PresetFile) Find(name string) (Preset, bool) {
	for _, p := range pf.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder creates a Seeder with the given options.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.NsfwRatio == 0 {
		opts.NsfwRatio = 0.15
	}
	if opts.AiRatio == 0 {
		opts.AiRatio = 0.25
	}
	return &Seeder{db: db, factory: NewFactory(db, opts), opts: opts}
}

// NewSeederFromPreset builds seeder options from a named preset.
func NewSeederFromPreset(db *gorm.DB, preset Preset) *Seeder {
	return NewSeeder(db, Options{
		NumUsers:     preset.Users,
		NumArtworks:  preset.Artworks,
		NumGalleries: preset.Galleries,
		NsfwRatio:    preset.NsfwRatio,
		AiRatio:      preset.AiRatio,
	})
}

// ClearAll removes previously seeded rows. Membership and comment rows go
// first so no dangling references survive a partial run.
func (s *Seeder) ClearAll() error {
	tables := []interface{}{
		&models.Comment{},
		&models.GalleryArtwork{},
		&models.Gallery{},
		&models.Artwork{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

// Run executes the full seeding pass: users, artworks, galleries with
// memberships, and comments.
func (s *Seeder) Run() error {
	log.Printf("Seeding %d users, %d artworks, %d galleries...",
		s.opts.NumUsers, s.opts.NumArtworks, s.opts.NumGalleries)

	if s.opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := s.seedUsers()
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("Created %d users", len(users))

	artworks, err := s.seedArtworks(users)
	if err != nil {
		return fmt.Errorf("failed to create artworks: %w", err)
	}
	log.Printf("Created %d artworks", len(artworks))

	galleries, err := s.seedGalleries(users, artworks)
	if err != nil {
		return fmt.Errorf("failed to create galleries: %w", err)
	}
	log.Printf("Created %d galleries", len(galleries))

	comments, err := s.seedComments(users, artworks)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("Created %d comments", comments)

	return nil
}

func (s *Seeder) seedUsers() ([]*models.User, error) {
	users := make([]*models.User, 0, s.opts.NumUsers)
	for i := 0; i < s.opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedArtworks(users []*models.User) ([]*models.Artwork, error) {
	if len(users) == 0 || s.opts.NumArtworks == 0 {
		return nil, nil
	}

	artworks := make([]*models.Artwork, 0, s.opts.NumArtworks)
	for i := 0; i < s.opts.NumArtworks; i++ {
		owner := users[s.factory.rng.Intn(len(users))]
		artworks = append(artworks, s.factory.BuildArtwork(owner))
	}
	if err := s.factory.CreateArtworksBatch(artworks); err != nil {
		return nil, err
	}
	return artworks, nil
}

// seedGalleries gives each gallery a handful of member artworks, not
// necessarily owned by the curator.
func (s *Seeder) seedGalleries(users []*models.User, artworks []*models.Artwork) ([]*models.Gallery, error) {
	if len(users) == 0 || len(artworks) == 0 {
		return nil, nil
	}

	galleries := make([]*models.Gallery, 0, s.opts.NumGalleries)
	for i := 0; i < s.opts.NumGalleries; i++ {
		curator := users[s.factory.rng.Intn(len(users))]
		gallery, err := s.factory.CreateGallery(curator)
		if err != nil {
			return nil, err
		}

		memberCount := s.factory.rng.Intn(6) + 1
		seen := map[string]bool{}
		for j := 0; j < memberCount; j++ {
			artwork := artworks[s.factory.rng.Intn(len(artworks))]
			if seen[artwork.ID] {
				continue
			}
			seen[artwork.ID] = true
			membership := &models.GalleryArtwork{GalleryID: gallery.ID, ArtworkID: artwork.ID}
			if err := s.db.Create(membership).Error; err != nil {
				return nil, err
			}
		}
		galleries = append(galleries, gallery)
	}
	return galleries, nil
}

func (s *Seeder) seedComments(users []*models.User, artworks []*models.Artwork) (int, error) {
	if len(users) == 0 || len(artworks) == 0 {
		return 0, nil
	}

	total := 0
	for _, artwork := range artworks {
		count := s.factory.rng.Intn(4)
		for i := 0; i < count; i++ {
			author := users[s.factory.rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(author, artwork); err != nil {
				return total, err
			}
			total++
		}
	}
	return total, nil
}
