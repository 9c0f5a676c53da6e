package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Patrice250/MyCabinet/module/tracking/domain"
	"github.com/Patrice250/MyCabinet/module/tracking/internal/broadcast"
)

// DefaultDeviceID identifies the tracked briefcase when a report carries
// no device id (the HTTP path from the GPS module does not send one).
const DefaultDeviceID = "briefcase-01"

type locationAppender interface {
	Append(ctx context.Context, fix *domain.Fix) error
}

type policyProvider interface {
	Policy(ctx context.Context) (*domain.SafeZonePolicy, error)
}

type alertRaiser interface {
	Raise(ctx context.Context, deviceID string, lat, lon float64, ts time.Time, message string) (*domain.AlertEvent, error)
}

// Result reports what a single ingested fix produced.
type Result struct {
	Fix   *domain.Fix
	Zone  domain.Zone
	Alert *domain.AlertEvent
}

// IngestService runs the telemetry pipeline: validate, classify, persist,
// then notify. Both the HTTP endpoint and the MQTT subscriber feed it.
type IngestService struct {
	location locationAppender
	safezone policyProvider
	alerts   alertRaiser
	hub      Broadcaster
	logger   *zap.Logger
}

func NewIngestService(location locationAppender, safezone policyProvider, alerts alertRaiser, hub Broadcaster, logger *zap.Logger) *IngestService {
	return &IngestService{
		location: location,
		safezone: safezone,
		alerts:   alerts,
		hub:      hub,
		logger:   logger,
	}
}

// Ingest appends one fix. The fix write must succeed before any alert or
// broadcast side effect runs; failures after that point are logged and do
// not roll the fix back. Each call appends a new row even for repeated
// coordinates: this is a telemetry log, not a state register.
func (s *IngestService) Ingest(ctx context.Context, report *domain.Report) (*Result, error) {
	lat, lon, ts, err := validateReport(report)
	if err != nil {
		return nil, err
	}

	policy, err := s.safezone.Policy(ctx)
	if err != nil {
		return nil, err
	}

	zone, err := Classify(lat, lon, policy)
	if err != nil {
		return nil, err
	}

	if report.AlertHint && !zone.Outside() {
		s.logger.Debug("device alert hint disagrees with classification",
			zap.Float64("latitude", lat), zap.Float64("longitude", lon),
			zap.String("zone", string(zone)))
	}

	fix := &domain.Fix{
		Latitude:   lat,
		Longitude:  lon,
		IsAlert:    zone.Outside(),
		CapturedAt: ts,
	}
	if err := s.location.Append(ctx, fix); err != nil {
		return nil, fmt.Errorf("persist fix: %w", err)
	}

	result := &Result{Fix: fix, Zone: zone}

	if zone.Outside() {
		message := fmt.Sprintf("Device moved out of safe zone at (%.6f, %.6f)", lat, lon)
		alert, err := s.alerts.Raise(ctx, deviceID(report), lat, lon, ts, message)
		if err != nil {
			// The fix is already durable; losing the alert record is
			// reported but does not fail the ingest.
			s.logger.Error("alert emission failed", zap.Error(err))
		} else {
			result.Alert = alert
		}
	}

	s.hub.Publish(broadcast.EventGPSUpdate, fix)

	return result, nil
}

// IngestAlert handles a device-originated alert report: it records both a
// flagged fix and an AlertEvent, then notifies dashboard clients.
func (s *IngestService) IngestAlert(ctx context.Context, report *domain.Report, message string) (*Result, error) {
	lat, lon, ts, err := validateReport(report)
	if err != nil {
		return nil, err
	}
	if message == "" {
		message = "Device reported a safe zone alert"
	}

	fix := &domain.Fix{
		Latitude:   lat,
		Longitude:  lon,
		IsAlert:    true,
		CapturedAt: ts,
	}
	if err := s.location.Append(ctx, fix); err != nil {
		return nil, fmt.Errorf("persist fix: %w", err)
	}

	alert, err := s.alerts.Raise(ctx, deviceID(report), lat, lon, ts, message)
	if err != nil {
		return nil, err
	}

	return &Result{Fix: fix, Zone: domain.ZoneOutside, Alert: alert}, nil
}

func validateReport(report *domain.Report) (lat, lon float64, ts time.Time, err error) {
	if report.Latitude == nil {
		return 0, 0, time.Time{}, &domain.ValidationError{Field: "latitude", Reason: "required"}
	}
	if report.Longitude == nil {
		return 0, 0, time.Time{}, &domain.ValidationError{Field: "longitude", Reason: "required"}
	}

	lat, lon = *report.Latitude, *report.Longitude
	if lat < -90 || lat > 90 {
		return 0, 0, time.Time{}, &domain.ValidationError{Field: "latitude", Reason: "must be between -90 and 90"}
	}
	if lon < -180 || lon > 180 {
		return 0, 0, time.Time{}, &domain.ValidationError{Field: "longitude", Reason: "must be between -180 and 180"}
	}

	ts = report.CapturedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return lat, lon, ts, nil
}

func deviceID(report *domain.Report) string {
	if report.DeviceID != "" {
		return report.DeviceID
	}
	return DefaultDeviceID
}
