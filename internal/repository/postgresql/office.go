package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type officeRepository struct {
	db *database.DB
}

func NewOfficeRepository(db *database.DB) office.OfficeRepository {
	return &officeRepository{db: db}
}

// Get implements office.OfficeRepository.
func (o *officeRepository) Get(ctx context.Context) (office.Config, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT latitude, longitude, radius_meters, work_start_time, updated_at
		FROM office_config
		WHERE singleton
	`

	var cfg office.Config
	err := q.QueryRow(ctx, query).Scan(&cfg.Latitude, &cfg.Longitude, &cfg.RadiusMeters, &cfg.WorkStartTime, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return office.Config{}, office.ErrOfficeNotFound
		}
		return office.Config{}, fmt.Errorf("failed to get office config: %w", err)
	}
	return cfg, nil
}

// Upsert implements office.OfficeRepository. The whole row is replaced, so an absent work
// start time clears the stored one.
func (o *officeRepository) Upsert(ctx context.Context, cfg office.Config) (office.Config, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		INSERT INTO office_config (singleton, latitude, longitude, radius_meters, work_start_time, updated_at)
		VALUES (TRUE, $1, $2, $3, $4, NOW())
		ON CONFLICT (singleton) DO UPDATE SET
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			radius_meters = EXCLUDED.radius_meters,
			work_start_time = EXCLUDED.work_start_time,
			updated_at = EXCLUDED.updated_at
		RETURNING latitude, longitude, radius_meters, work_start_time, updated_at
	`

	var stored office.Config
	err := q.QueryRow(ctx, query, cfg.Latitude, cfg.Longitude, cfg.RadiusMeters, cfg.WorkStartTime).
		Scan(&stored.Latitude, &stored.Longitude, &stored.RadiusMeters, &stored.WorkStartTime, &stored.UpdatedAt)
	if err != nil {
		return office.Config{}, fmt.Errorf("failed to upsert office config: %w", err)
	}
	return stored, nil
}
