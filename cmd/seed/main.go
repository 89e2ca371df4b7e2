// seed inserts development sample data for local testing.
// Idempotent: users whose login or email is already taken are skipped.
package main

import (
	"context"
	"errors"
	"log"

	"user-registry/internal/config"
	"user-registry/internal/db"
	userrepo "user-registry/internal/user/repository"
	userservice "user-registry/internal/user/service"
)

var devUsers = []map[string]any{
	{"name": "Dev User", "login": "devuser", "email": "dev@example.com", "password": "Devpass1!"},
	{"name": "Alice Doe", "login": "alice1", "email": "alice@example.com", "password": "Abcdef1!"},
	{"name": "Bob Roe", "login": "bob22", "email": "bob@example.com", "password": "Abcdef2!"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer database.Close()

	// Seeding goes through the creation pipeline so fixtures obey the same
	// validation and uniqueness rules as API callers.
	svc := userservice.New(userrepo.NewPostgresRepository(database), cfg.ShapePolicyValue(), cfg.ListLimit)

	ctx := context.Background()
	for _, payload := range devUsers {
		u, err := svc.Create(ctx, payload)
		if err != nil {
			if errors.Is(err, userservice.ErrConflict) {
				log.Printf("seed: %v already exists, skipping", payload["login"])
				continue
			}
			log.Fatalf("seed: create %v: %v", payload["login"], err)
		}
		log.Printf("seed: created user %s (id %d)", u.Login, u.ID)
	}
}
