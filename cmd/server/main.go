package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/Patrice250/MyCabinet/config"
	"github.com/Patrice250/MyCabinet/module/device"
	"github.com/Patrice250/MyCabinet/module/tracking"
)

func main() {
	cfg := config.Load()

	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat, "mycabinet-server")
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := config.NewPostgres(cfg)
	if err != nil {
		logger.Fatal("postgres", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	amqpConn, err := config.NewRabbitMQ(cfg)
	if err != nil {
		logger.Fatal("rabbitmq", zap.Error(err))
	}
	defer func() { _ = amqpConn.Close() }()

	mqttClient, err := config.NewMQTT(cfg)
	if err != nil {
		logger.Fatal("mqtt", zap.Error(err))
	}
	defer mqttClient.Disconnect(250)

	// Redis only backs the latest-fix cache; run without it if it is down.
	redisClient, err := config.NewRedis(cfg)
	if err != nil {
		logger.Warn("redis unavailable, latest-fix cache disabled", zap.Error(err))
		redisClient = nil
	}

	trackingModule, err := tracking.Build(db, amqpConn, mqttClient, redisClient, cfg.SafeZoneLat, cfg.SafeZoneLon, logger)
	if err != nil {
		logger.Fatal("tracking module", zap.Error(err))
	}
	deviceModule := device.Build(cfg.DeviceBaseURL, cfg.DeviceTimeout, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go trackingModule.Hub.Run(ctx)

	if err := trackingModule.StartSubscribers(); err != nil {
		logger.Fatal("start subscribers", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	health := config.NewHealthChecker(db, amqpConn, mqttClient, redisClient)
	health.Register(r)

	api := r.Group("/api")
	trackingModule.RegisterRoutes(api)
	deviceModule.RegisterRoutes(api)
	trackingModule.RegisterWS(r)

	// The dashboard is served from a separate origin.
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      cors.AllowAll().Handler(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // websocket connections stay open
	}

	go func() {
		logger.Info("listening", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
