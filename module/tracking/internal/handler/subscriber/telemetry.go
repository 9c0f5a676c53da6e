package subscriber

import (
	"context"
	"encoding/json"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/Patrice250/MyCabinet/module/tracking/domain"
	"github.com/Patrice250/MyCabinet/module/tracking/service"
)

const topicPattern = "briefcase/device/+/location"

type ingestService interface {
	Ingest(ctx context.Context, report *domain.Report) (*service.Result, error)
}

type telemetryMessage struct {
	DeviceID  string   `json:"device_id"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	IsAlert   bool     `json:"is_alert"`
	Timestamp int64    `json:"timestamp"`
}

// TelemetrySubscriber is the MQTT ingestion path. Devices that cannot
// reach the HTTP endpoint publish the same fix payload to the broker;
// both paths share one ingest pipeline.
type TelemetrySubscriber struct {
	client mqtt.Client
	ingest ingestService
	logger *zap.Logger
}

func NewTelemetrySubscriber(client mqtt.Client, ingest ingestService, logger *zap.Logger) *TelemetrySubscriber {
	return &TelemetrySubscriber{client: client, ingest: ingest, logger: logger}
}

func (s *TelemetrySubscriber) Start() error {
	token := s.client.Subscribe(topicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *TelemetrySubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw telemetryMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		s.logger.Warn("invalid telemetry message", zap.String("topic", msg.Topic()), zap.Error(err))
		return
	}

	report := &domain.Report{
		DeviceID:  raw.DeviceID,
		Latitude:  raw.Latitude,
		Longitude: raw.Longitude,
		AlertHint: raw.IsAlert,
	}
	if raw.Timestamp > 0 {
		report.CapturedAt = time.Unix(raw.Timestamp, 0).UTC()
	}

	if _, err := s.ingest.Ingest(context.Background(), report); err != nil {
		if domain.IsValidation(err) {
			s.logger.Warn("telemetry rejected", zap.String("topic", msg.Topic()), zap.Error(err))
			return
		}
		s.logger.Error("telemetry ingest failed", zap.String("topic", msg.Topic()), zap.Error(err))
	}
}
