package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Patrice250/MyCabinet/module/tracking/domain"
	"github.com/Patrice250/MyCabinet/module/tracking/internal/repository/database"
)

var _ database.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo stores the single active safe-zone configuration row.
// The fixed id keeps upserts explicit instead of relying on LIMIT 1
// over an unconstrained table.
type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) Get(ctx context.Context) (*domain.SafeZonePolicy, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT safe_zone_radius, gps_drift_threshold FROM safe_zone_settings WHERE id = 1`,
	)

	var policy domain.SafeZonePolicy
	if err := row.Scan(&policy.RadiusDegrees, &policy.DriftDegrees); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &policy, nil
}

func (r *SettingsRepo) Upsert(ctx context.Context, radiusDegrees, driftDegrees float64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO safe_zone_settings (id, safe_zone_radius, gps_drift_threshold)
		 VALUES (1, $1, $2)
		 ON CONFLICT (id) DO UPDATE SET
		   safe_zone_radius = EXCLUDED.safe_zone_radius,
		   gps_drift_threshold = EXCLUDED.gps_drift_threshold`,
		radiusDegrees, driftDegrees,
	)
	return err
}
