package tracking

import (
	"database/sql"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/Patrice250/MyCabinet/module/tracking/internal/broadcast"
	handler "github.com/Patrice250/MyCabinet/module/tracking/internal/handler/http"
	"github.com/Patrice250/MyCabinet/module/tracking/internal/handler/subscriber"
	"github.com/Patrice250/MyCabinet/module/tracking/internal/repository/cache"
	"github.com/Patrice250/MyCabinet/module/tracking/internal/repository/database/postgres"
	"github.com/Patrice250/MyCabinet/module/tracking/internal/repository/publisher/rabbitmq"
	"github.com/Patrice250/MyCabinet/module/tracking/service"
)

type Module struct {
	LocationSvc *service.LocationService
	SafeZoneSvc *service.SafeZoneService
	AlertSvc    *service.AlertService
	IngestSvc   *service.IngestService
	Hub         *broadcast.Hub

	handler    *handler.GPSHandler
	subscriber *subscriber.TelemetrySubscriber
}

// Build wires the tracking pipeline. redisClient may be nil; the
// latest-fix cache is then disabled.
func Build(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client, redisClient *redis.Client, centerLat, centerLon float64, logger *zap.Logger) (*Module, error) {
	fixRepo := postgres.NewFixRepo(db)
	alertRepo := postgres.NewAlertRepo(db)
	settingsRepo := postgres.NewSettingsRepo(db)

	alertPub, err := rabbitmq.NewAlertPublisher(amqpConn)
	if err != nil {
		return nil, fmt.Errorf("alert publisher: %w", err)
	}

	var latestCache service.LatestFixCache
	if redisClient != nil {
		latestCache = cache.NewLatestFixCache(redisClient)
	}

	hub := broadcast.NewHub(logger)

	locationSvc := service.NewLocationService(fixRepo, latestCache, logger)
	safezoneSvc := service.NewSafeZoneService(settingsRepo, centerLat, centerLon)
	alertSvc := service.NewAlertService(alertRepo, alertPub, hub, logger)
	ingestSvc := service.NewIngestService(locationSvc, safezoneSvc, alertSvc, hub, logger)

	h := handler.NewGPSHandler(ingestSvc, locationSvc, safezoneSvc, logger)
	sub := subscriber.NewTelemetrySubscriber(mqttClient, ingestSvc, logger)

	return &Module{
		LocationSvc: locationSvc,
		SafeZoneSvc: safezoneSvc,
		AlertSvc:    alertSvc,
		IngestSvc:   ingestSvc,
		Hub:         hub,
		handler:     h,
		subscriber:  sub,
	}, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	m.handler.Register(r)
}

func (m *Module) RegisterWS(r *gin.Engine) {
	r.GET("/ws", m.Hub.ServeWS)
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}
