package domain

import "time"

// Fix is a single GPS observation. Fixes form an append-only log;
// the latest fix is defined by insertion order, not by CapturedAt.
type Fix struct {
	ID         int64     `json:"-"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	IsAlert    bool      `json:"is_alert"`
	CapturedAt time.Time `json:"timestamp"`
}

// ZeroFix is the documented default returned when the log is empty.
func ZeroFix(now time.Time) *Fix {
	return &Fix{Latitude: 0, Longitude: 0, IsAlert: false, CapturedAt: now}
}

// Report is a raw device telemetry payload before validation.
// Latitude and Longitude are pointers so that 0 is a valid coordinate
// and absence is detectable.
type Report struct {
	DeviceID   string
	Latitude   *float64
	Longitude  *float64
	AlertHint  bool
	CapturedAt time.Time
}
