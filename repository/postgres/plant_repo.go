package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plantcare/backend/domain"
	"github.com/plantcare/backend/repository"
)

type plantRepository struct {
	pool *pgxpool.Pool
}

// NewPlantRepository returns a Postgres-backed implementation of PlantRepository.
func NewPlantRepository(pool *pgxpool.Pool) repository.PlantRepository {
	return &plantRepository{pool: pool}
}

func (r *plantRepository) GetByID(ctx context.Context, id string) (*domain.Plant, error) {
	const query = `
	SELECT id, user_id, name, species, acquired_at, watering_days,
	       last_watered, last_fertilized, last_pruned, notes, created_at, updated_at
	FROM plants
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanPlant(row)
}

func (r *plantRepository) List(ctx context.Context, filter repository.PlantFilter) ([]domain.Plant, error) {
	const query = `
	SELECT id, user_id, name, species, acquired_at, watering_days,
	       last_watered, last_fertilized, last_pruned, notes, created_at, updated_at
	FROM plants
	WHERE ($1 = '' OR user_id = $1)
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, filter.UserID, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plants []domain.Plant
	for rows.Next() {
		plant, err := scanPlant(rows)
		if err != nil {
			return nil, err
		}
		plants = append(plants, *plant)
	}
	return plants, rows.Err()
}

func (r *plantRepository) Create(ctx context.Context, plant *domain.Plant) (*domain.Plant, error) {
	if plant == nil {
		return nil, domain.ErrInvalidPayload
	}
	if plant.ID == "" {
		plant.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO plants (id, user_id, name, species, acquired_at, watering_days,
	                    last_watered, last_fertilized, last_pruned, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		plant.ID,
		plant.UserID,
		plant.Name,
		plant.Species,
		nullTimePtr(plant.AcquiredAt),
		plant.WateringDays,
		nullTimePtr(plant.LastWatered),
		nullTimePtr(plant.LastFertilized),
		nullTimePtr(plant.LastPruned),
		plant.Notes,
	).Scan(&plant.CreatedAt, &plant.UpdatedAt); err != nil {
		return nil, err
	}

	return plant, nil
}

func (r *plantRepository) Update(ctx context.Context, plant *domain.Plant) error {
	if plant == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE plants
	SET name = $2,
		species = $3,
		acquired_at = $4,
		watering_days = $5,
		notes = $6,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		plant.ID,
		plant.Name,
		plant.Species,
		nullTimePtr(plant.AcquiredAt),
		plant.WateringDays,
		plant.Notes,
	).Scan(&plant.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrPlantNotFound
		}
		return err
	}

	return nil
}

func (r *plantRepository) Upsert(ctx context.Context, plant *domain.Plant) error {
	if plant == nil || plant.ID == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO plants (id, user_id, name, species, acquired_at, watering_days,
	                    last_watered, last_fertilized, last_pruned, notes, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, COALESCE($11, NOW()), NOW())
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		species = EXCLUDED.species,
		acquired_at = EXCLUDED.acquired_at,
		watering_days = EXCLUDED.watering_days,
		notes = EXCLUDED.notes,
		updated_at = NOW()
	RETURNING created_at, updated_at
	`

	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		plant.ID,
		plant.UserID,
		plant.Name,
		plant.Species,
		nullTimePtr(plant.AcquiredAt),
		plant.WateringDays,
		nullTimePtr(plant.LastWatered),
		nullTimePtr(plant.LastFertilized),
		nullTimePtr(plant.LastPruned),
		plant.Notes,
		nullTime(plant.CreatedAt),
	).Scan(&createdAt, &updatedAt); err != nil {
		return err
	}

	plant.CreatedAt = createdAt
	plant.UpdatedAt = updatedAt
	return nil
}

func (r *plantRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM plants WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlantNotFound
	}
	return nil
}

func (r *plantRepository) SetLastCare(ctx context.Context, id string, careType domain.CareType, when time.Time) error {
	column, ok := lastCareColumn(careType)
	if !ok {
		return domain.ErrInvalidPayload
	}

	query := `UPDATE plants SET ` + column + ` = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, when)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlantNotFound
	}
	return nil
}

// lastCareColumn maps a care type onto its plants column. The column
// name never comes from user input.
func lastCareColumn(careType domain.CareType) (string, bool) {
	switch careType {
	case domain.CareWatering:
		return "last_watered", true
	case domain.CareFertilizing:
		return "last_fertilized", true
	case domain.CarePruning:
		return "last_pruned", true
	}
	return "", false
}

func scanPlant(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Plant, error) {
	var plant domain.Plant

	if err := row.Scan(
		&plant.ID,
		&plant.UserID,
		&plant.Name,
		&plant.Species,
		&plant.AcquiredAt,
		&plant.WateringDays,
		&plant.LastWatered,
		&plant.LastFertilized,
		&plant.LastPruned,
		&plant.Notes,
		&plant.CreatedAt,
		&plant.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlantNotFound
		}
		return nil, err
	}

	return &plant, nil
}
