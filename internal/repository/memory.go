package repository

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/planets-api/internal/domain"
)

// memoryUserRepository keeps credential records in process memory. It
// backs the storage variant selected when no Postgres DSN is given.
type memoryUserRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*domain.User
	byName map[string]*domain.User
}

// NewMemoryUserRepository returns an empty in-memory user store.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		nextID: 1,
		byID:   make(map[int64]*domain.User),
		byName: make(map[string]*domain.User),
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = r.nextID
	r.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	stored := *user
	r.byID[stored.ID] = &stored
	r.byName[stored.Username] = &stored
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[user.ID]
	if !ok {
		return ErrNotFound
	}

	stored := *user
	stored.Username = existing.Username
	r.byID[stored.ID] = &stored
	r.byName[stored.Username] = &stored
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// case-sensitive exact match
	user, ok := r.byName[username]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byID)), nil
}

// memoryPlanetRepository keeps planet records in process memory.
type memoryPlanetRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*domain.Planet
}

// NewMemoryPlanetRepository returns an empty in-memory planet store.
func NewMemoryPlanetRepository() PlanetRepository {
	return &memoryPlanetRepository{
		nextID: 1,
		byID:   make(map[int64]*domain.Planet),
	}
}

func (r *memoryPlanetRepository) Create(_ context.Context, planet *domain.Planet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	planet.ID = r.nextID
	r.nextID++
	planet.CreatedAt = now
	planet.UpdatedAt = now

	stored := *planet
	r.byID[stored.ID] = &stored
	return nil
}

func (r *memoryPlanetRepository) Update(_ context.Context, planet *domain.Planet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[planet.ID]; !ok {
		return ErrNotFound
	}
	planet.UpdatedAt = time.Now().UTC()

	stored := *planet
	r.byID[stored.ID] = &stored
	return nil
}

func (r *memoryPlanetRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memoryPlanetRepository) GetByID(_ context.Context, id int64) (*domain.Planet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	planet, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *planet
	return &copied, nil
}

func (r *memoryPlanetRepository) GetByName(_ context.Context, name string) (*domain.Planet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, planet := range r.byID {
		if planet.Name == name {
			copied := *planet
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryPlanetRepository) List(_ context.Context) ([]domain.Planet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	planets := make([]domain.Planet, 0, len(r.byID))
	for id := int64(1); id < r.nextID; id++ {
		if planet, ok := r.byID[id]; ok {
			planets = append(planets, *planet)
		}
	}
	return planets, nil
}

func (r *memoryPlanetRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byID)), nil
}
