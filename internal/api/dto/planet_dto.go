package dto

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/spec-kit/planets-api/internal/domain"
)

var errMustBePositive = errors.New("must be greater than zero")

// positive validates float fields that must be strictly greater than
// zero. Optional pointer fields are skipped when nil; a provided zero
// is rejected.
func positive(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	f, ok := v.(float64)
	if !ok || f <= 0 {
		return errMustBePositive
	}
	return nil
}

// CreatePlanetRequest payload for POST /planets.
type CreatePlanetRequest struct {
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

func (r CreatePlanetRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.PlanetType, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.DistanceFromSun, validation.Required, validation.By(positive)),
		validation.Field(&r.Radius, validation.Required, validation.By(positive)),
		validation.Field(&r.Mass, validation.By(positive)),
		validation.Field(&r.OrbitalPeriod, validation.By(positive)),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.Color, validation.Length(0, 50)),
		validation.Field(&r.ImageURL, validation.Length(0, 500)),
	)
}

// UpdatePlanetRequest payload for PUT /planets/:id. Only provided
// fields are applied.
type UpdatePlanetRequest struct {
	Name            *string  `json:"name"`
	PlanetType      *string  `json:"planet_type"`
	DistanceFromSun *float64 `json:"distance_from_sun"`
	Radius          *float64 `json:"radius"`
	Mass            *float64 `json:"mass"`
	OrbitalPeriod   *float64 `json:"orbital_period"`
	Description     *string  `json:"description"`
	Color           *string  `json:"color"`
	ImageURL        *string  `json:"image_url"`
}

func (r UpdatePlanetRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.PlanetType, validation.NilOrNotEmpty, validation.Length(1, 50)),
		validation.Field(&r.DistanceFromSun, validation.By(positive)),
		validation.Field(&r.Radius, validation.By(positive)),
		validation.Field(&r.Mass, validation.By(positive)),
		validation.Field(&r.OrbitalPeriod, validation.By(positive)),
		validation.Field(&r.Description, validation.Length(0, 1000)),
		validation.Field(&r.Color, validation.Length(0, 50)),
		validation.Field(&r.ImageURL, validation.Length(0, 500)),
	)
}

// PlanetResponse is the wire shape for a planet record.
type PlanetResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	PlanetType      string    `json:"planet_type"`
	DistanceFromSun float64   `json:"distance_from_sun"`
	Radius          float64   `json:"radius"`
	Mass            *float64  `json:"mass"`
	OrbitalPeriod   *float64  `json:"orbital_period"`
	Description     *string   `json:"description"`
	Color           *string   `json:"color"`
	ImageURL        *string   `json:"image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewPlanetResponse maps a planet record onto the wire shape.
func NewPlanetResponse(planet *domain.Planet) PlanetResponse {
	return PlanetResponse{
		ID:              planet.ID,
		Name:            planet.Name,
		PlanetType:      planet.PlanetType,
		DistanceFromSun: planet.DistanceFromSun,
		Radius:          planet.Radius,
		Mass:            planet.Mass,
		OrbitalPeriod:   planet.OrbitalPeriod,
		Description:     planet.Description,
		Color:           planet.Color,
		ImageURL:        planet.ImageURL,
		CreatedAt:       planet.CreatedAt,
		UpdatedAt:       planet.UpdatedAt,
	}
}
