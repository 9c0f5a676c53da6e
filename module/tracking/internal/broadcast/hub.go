package broadcast

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// Event names pushed to dashboard clients.
const (
	EventGPSUpdate = "gps_update"
	EventAlert     = "alert"
)

type frame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub is the in-process broadcast channel between the ingestion path and
// connected dashboard clients. Delivery is at-most-once with no replay:
// a client that connects after an event relies on the polling fallback.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		logger:     logger,
	}
}

// Run owns the client set; all membership changes and fan-out go through
// this loop so no lock is needed.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.logger.Info("dashboard client connected",
				zap.String("client_id", client.id),
				zap.Int("clients", len(h.clients)))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Info("dashboard client disconnected",
					zap.String("client_id", client.id),
					zap.Int("clients", len(h.clients)))
			}
		case msg := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					// Slow consumer: drop it rather than block the fan-out.
					delete(h.clients, client)
					close(client.send)
					h.logger.Warn("dropping slow dashboard client",
						zap.String("client_id", client.id))
				}
			}
		}
	}
}

// Publish fans an event out to every currently connected client.
// It never blocks the caller and never reports per-client failures.
func (h *Hub) Publish(event string, payload interface{}) {
	body, err := json.Marshal(frame{Event: event, Data: payload})
	if err != nil {
		h.logger.Error("marshal broadcast frame", zap.String("event", event), zap.Error(err))
		return
	}

	select {
	case h.broadcast <- body:
	default:
		h.logger.Warn("broadcast channel full, dropping event", zap.String("event", event))
	}
}
