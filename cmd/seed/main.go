// Command seed fills the database with demo data.
package main

import (
	"context"
	"flag"
	"log"

	"picboard/internal/config"
	"picboard/internal/database"
	"picboard/internal/repository"
	"picboard/internal/seed"
	"picboard/internal/service"
)

func main() {
	fake := flag.Int("fake", 0, "Number of additional random users to create")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	s := seed.NewSeeder(
		repository.NewUserRepository(db),
		repository.NewPostRepository(db),
		repository.NewLikeRepository(db),
		repository.NewCommentRepository(db),
		service.NewAuthService(cfg),
	)

	if err := s.Demo(ctx); err != nil {
		log.Fatalf("Demo seeding failed: %v", err)
	}
	if err := s.Fake(ctx, *fake); err != nil {
		log.Fatalf("Fake seeding failed: %v", err)
	}

	log.Println("Seeding done")
}
