package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plantcare/backend/domain"
	"github.com/plantcare/backend/repository"
)

type readingRepository struct {
	pool *pgxpool.Pool
}

// NewReadingRepository returns a Postgres-backed implementation of ReadingRepository.
func NewReadingRepository(pool *pgxpool.Pool) repository.ReadingRepository {
	return &readingRepository{pool: pool}
}

func (r *readingRepository) Insert(ctx context.Context, reading *domain.Reading) (*domain.Reading, error) {
	if reading == nil || reading.PlantID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if reading.ID == "" {
		reading.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO readings (id, plant_id, user_id, temperature, humidity, light, recorded_at)
	VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, NOW()))
	RETURNING recorded_at, created_at
	`

	if err := r.pool.QueryRow(ctx, query,
		reading.ID,
		reading.PlantID,
		reading.UserID,
		reading.Temperature,
		reading.Humidity,
		reading.Light,
		nullTime(reading.RecordedAt),
	).Scan(&reading.RecordedAt, &reading.CreatedAt); err != nil {
		return nil, err
	}

	return reading, nil
}

func (r *readingRepository) List(ctx context.Context, filter repository.ReadingFilter) ([]domain.Reading, error) {
	const query = `
	SELECT id, plant_id, user_id, temperature, humidity, light, recorded_at, created_at
	FROM readings
	WHERE plant_id = $1
	ORDER BY recorded_at DESC
	LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, filter.PlantID, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []domain.Reading
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		readings = append(readings, *reading)
	}
	return readings, rows.Err()
}

func scanReading(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Reading, error) {
	var reading domain.Reading

	if err := row.Scan(
		&reading.ID,
		&reading.PlantID,
		&reading.UserID,
		&reading.Temperature,
		&reading.Humidity,
		&reading.Light,
		&reading.RecordedAt,
		&reading.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlantNotFound
		}
		return nil, err
	}

	return &reading, nil
}
