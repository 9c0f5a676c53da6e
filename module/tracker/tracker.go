// Package tracker is the dashboard-side consumer of the tracking
// pipeline: it merges pushed websocket events with a periodic polling
// fallback into one last-write-wins view of the device.
package tracker

import (
	"sync"
	"time"
)

// State is the dashboard view of the tracked device.
type State struct {
	Latitude   float64
	Longitude  float64
	LastUpdate time.Time
	AlertMode  bool
	LastAlert  string
	// IsRealTime is false while the live sources are failing; the last
	// known position is kept rather than cleared.
	IsRealTime bool
}

type Tracker struct {
	mu    sync.Mutex
	state State
}

func New() *Tracker {
	return &Tracker{}
}

// ApplyFix merges a position update from either source. The more recent
// timestamp wins; an older update is dropped without reconciliation.
func (t *Tracker) ApplyFix(lat, lon float64, ts time.Time, isAlert bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.state.LastUpdate.IsZero() && ts.Before(t.state.LastUpdate) {
		return false
	}

	t.state.Latitude = lat
	t.state.Longitude = lon
	t.state.LastUpdate = ts
	t.state.AlertMode = isAlert
	t.state.IsRealTime = true
	return true
}

// ApplyAlert raises the alert banner. Alerts never move the position.
func (t *Tracker) ApplyAlert(message string, ts time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.AlertMode = true
	t.state.LastAlert = message
	if ts.After(t.state.LastUpdate) {
		t.state.LastUpdate = ts
	}
}

// MarkDegraded records a failed fetch: the view goes stale but the last
// known position stays on screen.
func (t *Tracker) MarkDegraded() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.IsRealTime = false
}

// Acknowledge clears the alert banner locally. Server-side AlertEvent
// records are untouched.
func (t *Tracker) Acknowledge() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.AlertMode = false
}

func (t *Tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
