package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserLoggedIn  EventType = "user_logged_in"
	EventPlanetCreated EventType = "planet_created"
	EventPlanetUpdated EventType = "planet_updated"
	EventPlanetDeleted EventType = "planet_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     string      `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserLoggedInPayload payload.
type UserLoggedInPayload struct {
	Username string `json:"username"`
}

// PlanetChangedPayload payload for created/updated/deleted events.
type PlanetChangedPayload struct {
	PlanetID int64  `json:"planet_id"`
	Name     string `json:"name"`
}
