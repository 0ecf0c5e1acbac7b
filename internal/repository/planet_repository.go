package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/planets-api/internal/domain"
)

const planetColumns = `id, name, planet_type, distance_from_sun, radius,
        mass, orbital_period, description, color, image_url, created_at, updated_at`

type planetRepository struct {
	pool *pgxpool.Pool
}

// NewPlanetRepository returns a Postgres-backed implementation.
func NewPlanetRepository(pool *pgxpool.Pool) PlanetRepository {
	return &planetRepository{pool: pool}
}

func (r *planetRepository) Create(ctx context.Context, planet *domain.Planet) error {
	const query = `
        INSERT INTO planets (name, planet_type, distance_from_sun, radius,
            mass, orbital_period, description, color, image_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		planet.Name,
		planet.PlanetType,
		planet.DistanceFromSun,
		planet.Radius,
		planet.Mass,
		planet.OrbitalPeriod,
		planet.Description,
		planet.Color,
		planet.ImageURL,
	).Scan(&planet.ID, &planet.CreatedAt, &planet.UpdatedAt)
}

func (r *planetRepository) Update(ctx context.Context, planet *domain.Planet) error {
	const query = `
        UPDATE planets SET name=$1, planet_type=$2, distance_from_sun=$3, radius=$4,
            mass=$5, orbital_period=$6, description=$7, color=$8, image_url=$9,
            updated_at=NOW()
        WHERE id=$10
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		planet.Name,
		planet.PlanetType,
		planet.DistanceFromSun,
		planet.Radius,
		planet.Mass,
		planet.OrbitalPeriod,
		planet.Description,
		planet.Color,
		planet.ImageURL,
		planet.ID,
	).Scan(&planet.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *planetRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM planets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *planetRepository) GetByID(ctx context.Context, id int64) (*domain.Planet, error) {
	const query = `SELECT ` + planetColumns + ` FROM planets WHERE id=$1`
	return r.scanPlanet(r.pool.QueryRow(ctx, query, id))
}

func (r *planetRepository) GetByName(ctx context.Context, name string) (*domain.Planet, error) {
	const query = `SELECT ` + planetColumns + ` FROM planets WHERE name=$1`
	return r.scanPlanet(r.pool.QueryRow(ctx, query, name))
}

func (r *planetRepository) List(ctx context.Context) ([]domain.Planet, error) {
	const query = `SELECT ` + planetColumns + ` FROM planets ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	planets := make([]domain.Planet, 0)
	for rows.Next() {
		var planet domain.Planet
		if err := scanPlanetFields(rows, &planet); err != nil {
			return nil, err
		}
		planets = append(planets, planet)
	}
	return planets, rows.Err()
}

func (r *planetRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM planets`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *planetRepository) scanPlanet(row pgx.Row) (*domain.Planet, error) {
	var planet domain.Planet
	if err := scanPlanetFields(row, &planet); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &planet, nil
}

func scanPlanetFields(row pgx.Row, planet *domain.Planet) error {
	return row.Scan(
		&planet.ID,
		&planet.Name,
		&planet.PlanetType,
		&planet.DistanceFromSun,
		&planet.Radius,
		&planet.Mass,
		&planet.OrbitalPeriod,
		&planet.Description,
		&planet.Color,
		&planet.ImageURL,
		&planet.CreatedAt,
		&planet.UpdatedAt,
	)
}
