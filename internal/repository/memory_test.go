package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/planets-api/internal/domain"
	"github.com/spec-kit/planets-api/internal/repository"
)

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserRepository()

	_, err := users.GetByUsername(ctx, "admin")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	admin := &domain.User{Username: "admin", Email: "admin@example.com", Role: domain.RoleAdmin, IsActive: true}
	require.NoError(t, users.Create(ctx, admin))
	assert.NotZero(t, admin.ID)
	assert.False(t, admin.CreatedAt.IsZero())

	got, err := users.GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Username)

	// lookup is case sensitive
	_, err = users.GetByUsername(ctx, "Admin")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err = users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)

	count, err := users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestMemoryUserRepositoryUpdateKeepsUsername(t *testing.T) {
	ctx := context.Background()
	users := repository.NewMemoryUserRepository()

	u := &domain.User{Username: "user", Role: domain.RoleUser, IsActive: true}
	require.NoError(t, users.Create(ctx, u))

	u.Role = domain.RoleAdmin
	u.Username = "renamed"
	require.NoError(t, users.Update(ctx, u))

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "user", got.Username, "username is immutable")
	assert.Equal(t, domain.RoleAdmin, got.Role)

	missing := &domain.User{ID: 999}
	assert.ErrorIs(t, users.Update(ctx, missing), repository.ErrNotFound)
}

func TestMemoryPlanetRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	planets := repository.NewMemoryPlanetRepository()

	first := &domain.Planet{Name: "Mercury", PlanetType: "Terrestrial", DistanceFromSun: 57.9, Radius: 2439.7}
	second := &domain.Planet{Name: "Venus", PlanetType: "Terrestrial", DistanceFromSun: 108.2, Radius: 6051.8}
	require.NoError(t, planets.Create(ctx, first))
	require.NoError(t, planets.Create(ctx, second))

	got, err := planets.GetByName(ctx, "Venus")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)

	all, err := planets.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []string{"Mercury", "Venus"}, []string{all[0].Name, all[1].Name})

	first.Radius = 2440.0
	require.NoError(t, planets.Update(ctx, first))
	updated, err := planets.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2440.0, updated.Radius, 0.001)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))

	require.NoError(t, planets.Delete(ctx, first.ID))
	_, err = planets.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, planets.Delete(ctx, first.ID), repository.ErrNotFound)

	all, err = planets.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Venus", all[0].Name)
}

func TestMemoryPlanetRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	planets := repository.NewMemoryPlanetRepository()

	p := &domain.Planet{Name: "Mars", PlanetType: "Terrestrial", DistanceFromSun: 227.9, Radius: 3389.5}
	require.NoError(t, planets.Create(ctx, p))

	got, err := planets.GetByID(ctx, p.ID)
	require.NoError(t, err)
	got.Name = "Tampered"

	again, err := planets.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mars", again.Name, "mutating a returned record must not affect the store")
}
