package device

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Patrice250/MyCabinet/module/device/internal/client"
	handler "github.com/Patrice250/MyCabinet/module/device/internal/handler/http"
)

type Module struct {
	handler *handler.ServoHandler
}

func Build(deviceBaseURL string, timeout time.Duration, logger *zap.Logger) *Module {
	servoClient := client.NewServoClient(deviceBaseURL, timeout)
	return &Module{handler: handler.NewServoHandler(servoClient, logger)}
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	m.handler.Register(r)
}
