package client

import "time"

// Identity is the server-resolved user record for a valid token.
type Identity struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsAdmin   bool      `json:"is_admin"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse is the body of a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Planet is the wire shape for a planet record.
type Planet struct {
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

// PlanetInput carries fields for creating a planet.
type PlanetInput struct {
	Name            string   `json:"name"`
	PlanetType      string   `json:"planet_type"`
	DistanceFromSun float64  `json:"distance_from_sun"`
	Radius          float64  `json:"radius"`
	Mass            *float64 `json:"mass,omitempty"`
	OrbitalPeriod   *float64 `json:"orbital_period,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Color           *string  `json:"color,omitempty"`
	ImageURL        *string  `json:"image_url,omitempty"`
}

// PlanetPatch carries partial-update fields; nil fields are omitted.
type PlanetPatch struct {
	Name            *string  `json:"name,omitempty"`
	PlanetType      *string  `json:"planet_type,omitempty"`
	DistanceFromSun *float64 `json:"distance_from_sun,omitempty"`
	Radius          *float64 `json:"radius,omitempty"`
	Mass            *float64 `json:"mass,omitempty"`
	OrbitalPeriod   *float64 `json:"orbital_period,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Color           *string  `json:"color,omitempty"`
	ImageURL        *string  `json:"image_url,omitempty"`
}

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}
