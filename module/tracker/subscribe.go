package tracker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const reconnectDelay = 2 * time.Second

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type fixEvent struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
	IsAlert   bool      `json:"is_alert"`
}

type alertEvent struct {
	DeviceID  string    `json:"deviceId"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Subscribe consumes the server's websocket stream until ctx is done,
// reconnecting after transport failures. While disconnected the tracker
// is marked degraded and the polling fallback carries the view.
func (t *Tracker) Subscribe(ctx context.Context, wsURL string, logger *zap.Logger) {
	for {
		if ctx.Err() != nil {
			return
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
		if err != nil {
			logger.Warn("websocket dial failed", zap.String("url", wsURL), zap.Error(err))
			t.MarkDegraded()
			select {
			case <-ctx.Done():
				return
			case <-time.After(reconnectDelay):
			}
			continue
		}

		logger.Info("websocket connected", zap.String("url", wsURL))
		t.readLoop(ctx, conn, logger)
		_ = conn.Close()
		t.MarkDegraded()
	}
}

func (t *Tracker) readLoop(ctx context.Context, conn *websocket.Conn, logger *zap.Logger) {
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}
		t.dispatch(payload, logger)
	}
}

func (t *Tracker) dispatch(payload []byte, logger *zap.Logger) {
	var f frame
	if err := json.Unmarshal(payload, &f); err != nil {
		logger.Warn("invalid broadcast frame", zap.Error(err))
		return
	}

	switch f.Event {
	case "gps_update":
		var ev fixEvent
		if err := json.Unmarshal(f.Data, &ev); err != nil {
			logger.Warn("invalid gps_update payload", zap.Error(err))
			return
		}
		t.ApplyFix(ev.Latitude, ev.Longitude, ev.Timestamp, ev.IsAlert)
	case "alert":
		var ev alertEvent
		if err := json.Unmarshal(f.Data, &ev); err != nil {
			logger.Warn("invalid alert payload", zap.Error(err))
			return
		}
		t.ApplyAlert(ev.Message, ev.Timestamp)
	}
}
