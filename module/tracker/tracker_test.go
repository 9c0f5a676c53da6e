package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyFix_FirstFix(t *testing.T) {
	tr := New()
	ts := time.Unix(1715000000, 0)

	assert.True(t, tr.ApplyFix(-2.1488, 30.5429, ts, false))

	s := tr.Snapshot()
	assert.Equal(t, -2.1488, s.Latitude)
	assert.Equal(t, 30.5429, s.Longitude)
	assert.Equal(t, ts, s.LastUpdate)
	assert.True(t, s.IsRealTime)
	assert.False(t, s.AlertMode)
}

func TestApplyFix_OlderUpdateIsDropped(t *testing.T) {
	tr := New()
	newer := time.Unix(1715005000, 0)
	older := time.Unix(1715000000, 0)

	assert.True(t, tr.ApplyFix(-2.15, 30.55, newer, false))
	// A stale poll result arriving after a fresher push must not win.
	assert.False(t, tr.ApplyFix(-9.99, 99.99, older, true))

	s := tr.Snapshot()
	assert.Equal(t, -2.15, s.Latitude)
	assert.Equal(t, 30.55, s.Longitude)
	assert.Equal(t, newer, s.LastUpdate)
	assert.False(t, s.AlertMode)
}

func TestApplyFix_EqualTimestampWins(t *testing.T) {
	tr := New()
	ts := time.Unix(1715000000, 0)

	assert.True(t, tr.ApplyFix(-2.15, 30.55, ts, false))
	assert.True(t, tr.ApplyFix(-2.16, 30.56, ts, false))

	assert.Equal(t, -2.16, tr.Snapshot().Latitude)
}

func TestApplyFix_RecoversRealTimeAfterDegraded(t *testing.T) {
	tr := New()
	tr.ApplyFix(-2.15, 30.55, time.Unix(1715000000, 0), false)
	tr.MarkDegraded()
	assert.False(t, tr.Snapshot().IsRealTime)

	tr.ApplyFix(-2.16, 30.56, time.Unix(1715001000, 0), false)
	assert.True(t, tr.Snapshot().IsRealTime)
}

func TestApplyAlert_NeverMovesPosition(t *testing.T) {
	tr := New()
	fixTS := time.Unix(1715000000, 0)
	tr.ApplyFix(-2.15, 30.55, fixTS, false)

	alertTS := time.Unix(1715002000, 0)
	tr.ApplyAlert("out of zone", alertTS)

	s := tr.Snapshot()
	assert.Equal(t, -2.15, s.Latitude)
	assert.Equal(t, 30.55, s.Longitude)
	assert.True(t, s.AlertMode)
	assert.Equal(t, "out of zone", s.LastAlert)
	assert.Equal(t, alertTS, s.LastUpdate)
}

func TestApplyAlert_OlderTimestampKeepsLastUpdate(t *testing.T) {
	tr := New()
	fixTS := time.Unix(1715005000, 0)
	tr.ApplyFix(-2.15, 30.55, fixTS, false)

	tr.ApplyAlert("late alert", time.Unix(1715000000, 0))

	s := tr.Snapshot()
	assert.True(t, s.AlertMode)
	assert.Equal(t, fixTS, s.LastUpdate)
}

func TestMarkDegraded_KeepsLastKnownPosition(t *testing.T) {
	tr := New()
	tr.ApplyFix(-2.15, 30.55, time.Unix(1715000000, 0), false)

	tr.MarkDegraded()

	s := tr.Snapshot()
	assert.Equal(t, -2.15, s.Latitude)
	assert.Equal(t, 30.55, s.Longitude)
	assert.False(t, s.IsRealTime)
}

func TestAcknowledge_ClearsAlertLocally(t *testing.T) {
	tr := New()
	tr.ApplyFix(-2.15, 30.55, time.Unix(1715000000, 0), true)
	tr.ApplyAlert("out of zone", time.Unix(1715001000, 0))

	tr.Acknowledge()

	s := tr.Snapshot()
	assert.False(t, s.AlertMode)
	// The message stays for the history line, only the banner clears.
	assert.Equal(t, "out of zone", s.LastAlert)
}
