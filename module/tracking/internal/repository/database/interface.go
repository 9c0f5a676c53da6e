package database

import (
	"context"

	"github.com/Patrice250/MyCabinet/module/tracking/domain"
)

type FixRepository interface {
	Insert(ctx context.Context, fix *domain.Fix) error
	GetLatest(ctx context.Context) (*domain.Fix, error)
	GetHistory(ctx context.Context, limit int) ([]domain.Fix, error)
}

type AlertRepository interface {
	Insert(ctx context.Context, event *domain.AlertEvent) error
	GetRecent(ctx context.Context, limit int) ([]domain.AlertEvent, error)
}

type SettingsRepository interface {
	// Get returns domain.ErrNotFound when no settings row exists yet.
	Get(ctx context.Context) (*domain.SafeZonePolicy, error)
	Upsert(ctx context.Context, radiusDegrees, driftDegrees float64) error
}
