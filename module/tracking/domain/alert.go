package domain

import "time"

// AlertEvent is a persisted record of a safe-zone violation. It is
// independent of the Fix log: it carries the triggering coordinates by
// value, not by foreign key. Repeated violations each produce a new
// event; no deduplication is applied.
type AlertEvent struct {
	ID        int64     `json:"-"`
	DeviceID  string    `json:"deviceId"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"timestamp"`
}
