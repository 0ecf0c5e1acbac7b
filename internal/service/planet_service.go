package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/planets-api/internal/cache"
	"github.com/spec-kit/planets-api/internal/domain"
	"github.com/spec-kit/planets-api/internal/events"
	"github.com/spec-kit/planets-api/internal/repository"
	apperrors "github.com/spec-kit/planets-api/pkg/util"
)

// PlanetCreateInput carries validated create fields.
type PlanetCreateInput struct {
	Name            string
	PlanetType      string
	DistanceFromSun float64
	Radius          float64
	Mass            *float64
	OrbitalPeriod   *float64
	Description     *string
	Color           *string
	ImageURL        *string
}

// PlanetUpdateInput carries validated partial-update fields; nil means
// leave the stored value unchanged.
type PlanetUpdateInput struct {
	Name            *string
	PlanetType      *string
	DistanceFromSun *float64
	Radius          *float64
	Mass            *float64
	OrbitalPeriod   *float64
	Description     *string
	Color           *string
	ImageURL        *string
}

// PlanetService coordinates planet reads and mutations with the cache
// and event dispatch.
type PlanetService struct {
	planets    repository.PlanetRepository
	cache      *cache.PlanetCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewPlanetService builds the service.
func NewPlanetService(planets repository.PlanetRepository, planetCache *cache.PlanetCache, dispatcher events.Dispatcher, logger *zap.Logger) *PlanetService {
	return &PlanetService{planets: planets, cache: planetCache, dispatcher: dispatcher, logger: logger}
}

// List returns all planets, serving from the cache when possible.
func (s *PlanetService) List(ctx context.Context) ([]domain.Planet, error) {
	if planets, ok := s.cache.GetList(ctx); ok {
		return planets, nil
	}

	planets, err := s.planets.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetList(ctx, planets)
	return planets, nil
}

// Get returns a single planet by id.
func (s *PlanetService) Get(ctx context.Context, id int64) (*domain.Planet, error) {
	planet, err := s.planets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("planet", map[string]any{"id": id})
		}
		return nil, err
	}
	return planet, nil
}

// Create stores a new planet. Names are unique.
func (s *PlanetService) Create(ctx context.Context, actor string, input PlanetCreateInput) (*domain.Planet, error) {
	if _, err := s.planets.GetByName(ctx, input.Name); err == nil {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("planet with name %q already exists", input.Name), nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	planet := &domain.Planet{
		Name:            input.Name,
		PlanetType:      input.PlanetType,
		DistanceFromSun: input.DistanceFromSun,
		Radius:          input.Radius,
		Mass:            input.Mass,
		OrbitalPeriod:   input.OrbitalPeriod,
		Description:     input.Description,
		Color:           input.Color,
		ImageURL:        input.ImageURL,
	}
	if err := s.planets.Create(ctx, planet); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	s.publish(ctx, events.EventPlanetCreated, actor, planet)
	return planet, nil
}

// Update applies the provided fields to an existing planet.
func (s *PlanetService) Update(ctx context.Context, actor string, id int64, input PlanetUpdateInput) (*domain.Planet, error) {
	planet, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != planet.Name {
		if _, err := s.planets.GetByName(ctx, *input.Name); err == nil {
			return nil, apperrors.NewConflict(
				fmt.Sprintf("planet with name %q already exists", *input.Name), nil)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		planet.Name = *input.Name
	}
	if input.PlanetType != nil {
		planet.PlanetType = *input.PlanetType
	}
	if input.DistanceFromSun != nil {
		planet.DistanceFromSun = *input.DistanceFromSun
	}
	if input.Radius != nil {
		planet.Radius = *input.Radius
	}
	if input.Mass != nil {
		planet.Mass = input.Mass
	}
	if input.OrbitalPeriod != nil {
		planet.OrbitalPeriod = input.OrbitalPeriod
	}
	if input.Description != nil {
		planet.Description = input.Description
	}
	if input.Color != nil {
		planet.Color = input.Color
	}
	if input.ImageURL != nil {
		planet.ImageURL = input.ImageURL
	}

	if err := s.planets.Update(ctx, planet); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("planet", map[string]any{"id": id})
		}
		return nil, err
	}

	s.cache.Invalidate(ctx)
	s.publish(ctx, events.EventPlanetUpdated, actor, planet)
	return planet, nil
}

// Delete removes a planet by id.
func (s *PlanetService) Delete(ctx context.Context, actor string, id int64) error {
	planet, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.planets.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("planet", map[string]any{"id": id})
		}
		return err
	}

	s.cache.Invalidate(ctx)
	s.publish(ctx, events.EventPlanetDeleted, actor, planet)
	return nil
}

func (s *PlanetService) publish(ctx context.Context, eventType events.EventType, actor string, planet *domain.Planet) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.NewEvent(eventType, actor,
		events.PlanetChangedPayload{PlanetID: planet.ID, Name: planet.Name}))
	if err != nil {
		s.logger.Warn("event publish failed", zap.Error(err))
	}
}
