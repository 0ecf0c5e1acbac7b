package persistence

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/planets-api/internal/auth"
	"github.com/spec-kit/planets-api/internal/domain"
	"github.com/spec-kit/planets-api/internal/repository"
)

//go:embed seed_data.json
var seedData []byte

type seedFile struct {
	Planets []seedPlanet `json:"planets"`
}

type seedPlanet struct {
	Name            string   `json:"name"`
	PlanetType      string   `json:"planet_type"`
	DistanceFromSun float64  `json:"distance_from_sun"`
	Radius          float64  `json:"radius"`
	Mass            *float64 `json:"mass"`
	OrbitalPeriod   *float64 `json:"orbital_period"`
	Description     *string  `json:"description"`
	Color           *string  `json:"color"`
	ImageURL        *string  `json:"image_url"`
}

// DemoUser describes a seeded credential.
type DemoUser struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// DemoUsers are the two fixed demo accounts.
var DemoUsers = []DemoUser{
	{Username: "admin", Email: "admin@planets.com", Password: "admin123", Role: domain.RoleAdmin},
	{Username: "user", Email: "user@planets.com", Password: "user123", Role: domain.RoleUser},
}

// Seed populates empty stores with the demo users and the embedded
// planet list. It works against either storage variant and is a no-op
// when records already exist.
func Seed(ctx context.Context, users repository.UserRepository, planets repository.PlanetRepository, bcryptCost int, logger *zap.Logger) error {
	userCount, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if userCount == 0 {
		for _, demo := range DemoUsers {
			hash, err := auth.HashPassword(demo.Password, bcryptCost)
			if err != nil {
				return fmt.Errorf("hash demo password: %w", err)
			}
			user := &domain.User{
				Username:     demo.Username,
				Email:        demo.Email,
				PasswordHash: hash,
				Role:         demo.Role,
				IsActive:     true,
			}
			if err := users.Create(ctx, user); err != nil {
				return fmt.Errorf("seed user %s: %w", demo.Username, err)
			}
		}
		logger.Info("seeded demo users", zap.Int("count", len(DemoUsers)))
	}

	planetCount, err := planets.Count(ctx)
	if err != nil {
		return fmt.Errorf("count planets: %w", err)
	}
	if planetCount > 0 {
		logger.Info("planets already seeded, skipping")
		return nil
	}

	var file seedFile
	if err := json.Unmarshal(seedData, &file); err != nil {
		return fmt.Errorf("parse seed data: %w", err)
	}

	for _, p := range file.Planets {
		planet := &domain.Planet{
			Name:            p.Name,
			PlanetType:      p.PlanetType,
			DistanceFromSun: p.DistanceFromSun,
			Radius:          p.Radius,
			Mass:            p.Mass,
			OrbitalPeriod:   p.OrbitalPeriod,
			Description:     p.Description,
			Color:           p.Color,
			ImageURL:        p.ImageURL,
		}
		if err := planets.Create(ctx, planet); err != nil {
			return fmt.Errorf("seed planet %s: %w", p.Name, err)
		}
	}

	logger.Info("seeded planets", zap.Int("count", len(file.Planets)))
	return nil
}
