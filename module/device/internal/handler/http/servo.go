package http

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Patrice250/MyCabinet/module/tracking/domain"
)

type servoClient interface {
	SetAngle(ctx context.Context, angle int) error
}

type angleRequest struct {
	Angle *int `json:"angle"`
}

// ServoHandler drives the briefcase lock actuator. The last successfully
// applied angle lives in process memory, as the device itself is the
// authoritative state holder.
type ServoHandler struct {
	client servoClient
	angle  atomic.Int64
	logger *zap.Logger
}

func NewServoHandler(client servoClient, logger *zap.Logger) *ServoHandler {
	return &ServoHandler{client: client, logger: logger}
}

func (h *ServoHandler) Register(r *gin.RouterGroup) {
	servo := r.Group("/servo")
	servo.POST("/angle", h.UpdateAngle)
	servo.GET("/status", h.GetStatus)
}

func (h *ServoHandler) UpdateAngle(c *gin.Context) {
	var req angleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Angle == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "angle must be an integer"})
		return
	}

	angle := *req.Angle
	if angle < 0 || angle > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "angle must be between 0 and 180"})
		return
	}

	if err := h.client.SetAngle(c.Request.Context(), angle); err != nil {
		if errors.Is(err, domain.ErrDeviceTimeout) {
			h.logger.Warn("servo command timed out", zap.Int("angle", angle))
			c.JSON(http.StatusBadGateway, gin.H{"error": "device unreachable"})
			return
		}
		h.logger.Error("servo command failed", zap.Int("angle", angle), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update angle"})
		return
	}

	h.angle.Store(int64(angle))
	c.JSON(http.StatusOK, gin.H{"success": true, "angle": angle})
}

func (h *ServoHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"angle": h.angle.Load()})
}
