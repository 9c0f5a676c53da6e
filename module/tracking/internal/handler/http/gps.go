package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Patrice250/MyCabinet/module/tracking/domain"
	"github.com/Patrice250/MyCabinet/module/tracking/service"
)

type ingestService interface {
	Ingest(ctx context.Context, report *domain.Report) (*service.Result, error)
	IngestAlert(ctx context.Context, report *domain.Report, message string) (*service.Result, error)
}

type locationService interface {
	Latest(ctx context.Context) (*domain.Fix, error)
	History(ctx context.Context, limit int) ([]domain.Fix, error)
}

type safeZoneService interface {
	Policy(ctx context.Context) (*domain.SafeZonePolicy, error)
	Update(ctx context.Context, radiusDegrees, driftDegrees float64) error
}

type locationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	IsAlert   bool     `json:"is_alert"`
}

type alertRequest struct {
	DeviceID  string   `json:"deviceId"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Timestamp int64    `json:"timestamp"`
	Message   string   `json:"message"`
}

type settingsRequest struct {
	SafeZoneRadius    *float64 `json:"safe_zone_radius"`
	GPSDriftThreshold *float64 `json:"gps_drift_threshold"`
}

type GPSHandler struct {
	ingestSvc   ingestService
	locationSvc locationService
	safezoneSvc safeZoneService
	logger      *zap.Logger
}

func NewGPSHandler(ingestSvc ingestService, locationSvc locationService, safezoneSvc safeZoneService, logger *zap.Logger) *GPSHandler {
	return &GPSHandler{
		ingestSvc:   ingestSvc,
		locationSvc: locationSvc,
		safezoneSvc: safezoneSvc,
		logger:      logger,
	}
}

func (h *GPSHandler) Register(r *gin.RouterGroup) {
	gps := r.Group("/gps")
	gps.POST("/location", h.InsertLocation)
	gps.GET("/location", h.GetLatestLocation)
	gps.GET("/history", h.GetHistory)
	gps.POST("/alert", h.HandleAlert)
	gps.GET("/settings", h.GetSettings)
	gps.POST("/settings", h.UpdateSettings)
}

func (h *GPSHandler) InsertLocation(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	report := &domain.Report{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		AlertHint: req.IsAlert,
	}

	if _, err := h.ingestSvc.Ingest(c.Request.Context(), report); err != nil {
		h.writeError(c, err, "failed to save GPS data")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "GPS data inserted successfully"})
}

// GetLatestLocation serves the polling fallback. An empty log answers 404
// but still carries the documented zero-default payload so the dashboard
// can render without special-casing.
func (h *GPSHandler) GetLatestLocation(c *gin.Context) {
	fix, err := h.locationSvc.Latest(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, domain.ZeroFix(time.Now().UTC()))
			return
		}
		h.logger.Error("fetch latest fix", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error while fetching GPS data"})
		return
	}

	c.JSON(http.StatusOK, fix)
}

func (h *GPSHandler) GetHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit parameter"})
			return
		}
		limit = parsed
	}

	fixes, err := h.locationSvc.History(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("fetch fix history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}
	if fixes == nil {
		fixes = []domain.Fix{}
	}

	c.JSON(http.StatusOK, fixes)
}

func (h *GPSHandler) HandleAlert(c *gin.Context) {
	var req alertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	report := &domain.Report{
		DeviceID:  req.DeviceID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if req.Timestamp > 0 {
		report.CapturedAt = time.Unix(req.Timestamp, 0).UTC()
	}

	if _, err := h.ingestSvc.IngestAlert(c.Request.Context(), report, req.Message); err != nil {
		h.writeError(c, err, "failed to process alert")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Alert processed"})
}

func (h *GPSHandler) GetSettings(c *gin.Context) {
	policy, err := h.safezoneSvc.Policy(c.Request.Context())
	if err != nil {
		h.logger.Error("fetch safe zone settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch settings"})
		return
	}

	c.JSON(http.StatusOK, policy)
}

func (h *GPSHandler) UpdateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.SafeZoneRadius == nil || req.GPSDriftThreshold == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "safe_zone_radius and gps_drift_threshold are required"})
		return
	}

	if err := h.safezoneSvc.Update(c.Request.Context(), *req.SafeZoneRadius, *req.GPSDriftThreshold); err != nil {
		h.writeError(c, err, "failed to update settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *GPSHandler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidPolicy):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
