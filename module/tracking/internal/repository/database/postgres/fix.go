package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Patrice250/MyCabinet/module/tracking/domain"
	"github.com/Patrice250/MyCabinet/module/tracking/internal/repository/database"
)

var _ database.FixRepository = (*FixRepo)(nil)

type FixRepo struct {
	db *sql.DB
}

func NewFixRepo(db *sql.DB) *FixRepo {
	return &FixRepo{db: db}
}

func (r *FixRepo) Insert(ctx context.Context, fix *domain.Fix) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO gps_fixes (latitude, longitude, is_alert, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		fix.Latitude, fix.Longitude, fix.IsAlert, fix.CapturedAt,
	).Scan(&fix.ID)
}

// GetLatest returns the most recently inserted fix. Insertion order, not
// CapturedAt, defines "latest": a backdated timestamp does not reorder the log.
func (r *FixRepo) GetLatest(ctx context.Context) (*domain.Fix, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, latitude, longitude, is_alert, created_at FROM gps_fixes ORDER BY id DESC LIMIT 1`,
	)

	var fix domain.Fix
	if err := row.Scan(&fix.ID, &fix.Latitude, &fix.Longitude, &fix.IsAlert, &fix.CapturedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &fix, nil
}

func (r *FixRepo) GetHistory(ctx context.Context, limit int) ([]domain.Fix, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, latitude, longitude, is_alert, created_at FROM gps_fixes ORDER BY id DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Fix
	for rows.Next() {
		var fix domain.Fix
		if err := rows.Scan(&fix.ID, &fix.Latitude, &fix.Longitude, &fix.IsAlert, &fix.CapturedAt); err != nil {
			return nil, err
		}
		results = append(results, fix)
	}
	return results, rows.Err()
}
