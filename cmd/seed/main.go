// Command main runs the database seeder for Atelier.
package main

import (
	"flag"
	"log"

	"atelier/internal/config"
	"atelier/internal/database"
	"atelier/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numArtworks := flag.Int("artworks", 150, "Number of artworks to create")
	numGalleries := flag.Int("galleries", 12, "Number of galleries to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	presetFile := flag.String("preset-file", "", "YAML file with named seeding presets")
	preset := flag.String("preset", "", "Apply a named preset from the preset file")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var seeder *seed.Seeder
	if *preset != "" {
		if *presetFile == "" {
			log.Fatal("-preset requires -preset-file")
		}
		presets, err := seed.LoadPresets(*presetFile)
		if err != nil {
			log.Fatalf("Failed to load presets: %v", err)
		}
		p, ok := presets.Find(*preset)
		if !ok {
			log.Fatalf("Preset %q not found in %s", *preset, *presetFile)
		}
		log.Printf("Applying preset: %s", p.Name)
		seeder = seed.NewSeederFromPreset(db, p)
	} else {
		log.Printf("Target: %d users, %d artworks, %d galleries, clean=%v",
			*numUsers, *numArtworks, *numGalleries, *shouldClean)
		seeder = seed.NewSeeder(db, seed.Options{
			NumUsers:     *numUsers,
			NumArtworks:  *numArtworks,
			NumGalleries: *numGalleries,
			ShouldClean:  *shouldClean,
		})
	}

	if err := seeder.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with demo data.")
	log.Println("All seeded users have the password: password123")
}
