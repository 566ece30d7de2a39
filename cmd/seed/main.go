package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/devconnector/config"
	"github.com/oksasatya/devconnector/internal/application"
	"github.com/oksasatya/devconnector/internal/container"
	"github.com/oksasatya/devconnector/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	closeStore, err := container.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer closeStore()

	secret := cfg.JWTSecret
	if secret == "" {
		secret = "seed-only-secret"
	}
	identities := application.NewIdentityService(container.GetIdentityRepo(), helpers.NewJWTManager(secret, cfg.TokenTTL), nil, logger)
	profiles := application.NewProfileService(container.GetProfileRepo(), container.GetAccountRepo(), nil, logger)

	email := "demo@devconnector.dev"
	password := "password123"
	name := "Demo Developer"

	if _, err := identities.Register(ctx, application.RegisterInput{Name: name, Email: email, Password: password}); err != nil && !errors.Is(err, application.ErrDuplicateIdentity) {
		log.Fatalf("failed to seed identity: %v", err)
	}
	id, err := identities.Authenticate(ctx, email, password)
	if err != nil {
		log.Fatalf("failed to load seeded identity: %v", err)
	}
	fmt.Printf("seeded identity: id=%s email=%s password=%s\n", id.ID, email, password)

	p, err := profiles.Upsert(ctx, id.ID, application.UpsertInput{
		Status:         "Developer",
		Company:        "DevConnector",
		Location:       "Remote",
		Bio:            "Seeded profile",
		Skills:         "go, postgres, redis",
		GithubUsername: "octocat",
		Twitter:        "https://twitter.com/devconnector",
	})
	if err != nil {
		log.Fatalf("failed to seed profile: %v", err)
	}
	if len(p.Experience) == 0 {
		if _, err := profiles.AddExperience(ctx, id.ID, application.ExperienceInput{
			Title:   "Backend Engineer",
			Company: "DevConnector",
			From:    "2020-01-01",
			Current: true,
		}); err != nil {
			log.Fatalf("failed to seed experience: %v", err)
		}
	}
	fmt.Printf("seeded profile for %s with skills %v\n", id.ID, p.Skills)
}
