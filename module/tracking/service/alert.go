package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Patrice250/MyCabinet/module/tracking/domain"
	"github.com/Patrice250/MyCabinet/module/tracking/internal/broadcast"
	"github.com/Patrice250/MyCabinet/module/tracking/internal/repository/database"
	"github.com/Patrice250/MyCabinet/module/tracking/internal/repository/publisher"
)

// Broadcaster pushes events to connected dashboard clients.
type Broadcaster interface {
	Publish(event string, payload interface{})
}

type AlertService struct {
	repo   database.AlertRepository
	pub    publisher.AlertPublisher
	hub    Broadcaster
	logger *zap.Logger
}

func NewAlertService(repo database.AlertRepository, pub publisher.AlertPublisher, hub Broadcaster, logger *zap.Logger) *AlertService {
	return &AlertService{repo: repo, pub: pub, hub: hub, logger: logger}
}

// Raise records a safe-zone violation. Every call appends a new event;
// repeated violations are not deduplicated. If persistence fails nothing
// is published; after a durable write, delivery to the broker and to
// dashboard clients is best-effort.
func (s *AlertService) Raise(ctx context.Context, deviceID string, lat, lon float64, ts time.Time, message string) (*domain.AlertEvent, error) {
	event := &domain.AlertEvent{
		DeviceID:  deviceID,
		Latitude:  lat,
		Longitude: lon,
		Message:   message,
		CreatedAt: ts,
	}

	if err := s.repo.Insert(ctx, event); err != nil {
		return nil, fmt.Errorf("persist alert: %w", err)
	}

	if s.pub != nil {
		if err := s.pub.PublishAlert(ctx, event); err != nil {
			s.logger.Error("alert broker publish failed", zap.Error(err))
		}
	}

	s.hub.Publish(broadcast.EventAlert, event)

	s.logger.Warn("safe zone alert raised",
		zap.String("device_id", deviceID),
		zap.Float64("latitude", lat),
		zap.Float64("longitude", lon))

	return event, nil
}

func (s *AlertService) Recent(ctx context.Context, limit int) ([]domain.AlertEvent, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.repo.GetRecent(ctx, limit)
}
