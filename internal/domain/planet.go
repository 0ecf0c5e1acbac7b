package domain

import "time"

// Planet is the aggregate for planet records.
type Planet struct {
	ID              int64
	Name            string
	PlanetType      string
	DistanceFromSun float64
	Radius          float64
	Mass            *float64
	OrbitalPeriod   *float64
	Description     *string
	Color           *string
	ImageURL        *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
