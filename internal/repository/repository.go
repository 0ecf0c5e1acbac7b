package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/planets-api/internal/domain"
)

// ErrNotFound is returned when a record does not exist. Both storage
// variants report missing rows through this sentinel.
var ErrNotFound = errors.New("record not found")

// UserRepository defines persistence access for credential records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

// PlanetRepository defines persistence access for planet records.
type PlanetRepository interface {
	Create(ctx context.Context, planet *domain.Planet) error
	Update(ctx context.Context, planet *domain.Planet) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Planet, error)
	GetByName(ctx context.Context, name string) (*domain.Planet, error)
	List(ctx context.Context) ([]domain.Planet, error)
	Count(ctx context.Context) (int64, error)
}
