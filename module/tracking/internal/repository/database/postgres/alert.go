package postgres

import (
	"context"
	"database/sql"

	"github.com/Patrice250/MyCabinet/module/tracking/domain"
	"github.com/Patrice250/MyCabinet/module/tracking/internal/repository/database"
)

var _ database.AlertRepository = (*AlertRepo)(nil)

type AlertRepo struct {
	db *sql.DB
}

func NewAlertRepo(db *sql.DB) *AlertRepo {
	return &AlertRepo{db: db}
}

func (r *AlertRepo) Insert(ctx context.Context, event *domain.AlertEvent) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO alerts (device_id, latitude, longitude, message, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		event.DeviceID, event.Latitude, event.Longitude, event.Message, event.CreatedAt,
	).Scan(&event.ID)
}

func (r *AlertRepo) GetRecent(ctx context.Context, limit int) ([]domain.AlertEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, device_id, latitude, longitude, message, created_at FROM alerts ORDER BY id DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.AlertEvent
	for rows.Next() {
		var ev domain.AlertEvent
		if err := rows.Scan(&ev.ID, &ev.DeviceID, &ev.Latitude, &ev.Longitude, &ev.Message, &ev.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, ev)
	}
	return results, rows.Err()
}
