package presence

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hrsuite/presence-monitor-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func TestTimerStartsIdle(t *testing.T) {
	timer := NewTimer(nil, testLogger())

	snap := timer.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 0, snap.ElapsedSeconds)
	assert.Equal(t, "00:00:00", snap.Display)
}

func TestTimerRunsFromCheckIn(t *testing.T) {
	now := time.Date(2026, 1, 15, 9, 0, 5, 0, time.UTC)
	timer := NewTimer(func() time.Time { return now }, testLogger())

	timer.Apply(attendance.StatusResponse{
		IsClockedIn: true,
		CheckIn:     strPtr("09:00:00"),
	})

	snap := timer.Snapshot()
	assert.Equal(t, StateRunning, snap.State)
	assert.Equal(t, 5, snap.ElapsedSeconds)
	assert.Equal(t, "00:00:05", snap.Display)

	// The anchor is fixed; only the wall clock moves the display.
	now = now.Add(90 * time.Minute)
	snap = timer.Snapshot()
	assert.Equal(t, 5405, snap.ElapsedSeconds)
	assert.Equal(t, "01:30:05", snap.Display)
}

func TestTimerRefetchKeepsAnchor(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	timer := NewTimer(func() time.Time { return now }, testLogger())

	status := attendance.StatusResponse{
		IsClockedIn: true,
		CheckIn:     strPtr("09:00:00"),
	}
	timer.Apply(status)

	now = now.Add(30 * time.Second)
	timer.Apply(status)

	snap := timer.Snapshot()
	assert.Equal(t, 3630, snap.ElapsedSeconds)
}

func TestTimerStopsOnCheckOut(t *testing.T) {
	now := time.Date(2026, 1, 15, 18, 0, 0, 0, time.UTC)
	timer := NewTimer(func() time.Time { return now }, testLogger())

	timer.Apply(attendance.StatusResponse{
		IsClockedIn: false,
		CheckIn:     strPtr("09:00:00"),
		CheckOut:    strPtr("17:30:00"),
	})

	snap := timer.Snapshot()
	assert.Equal(t, StateStopped, snap.State)
	assert.Equal(t, 8*3600+30*60, snap.ElapsedSeconds)
	assert.Equal(t, "08:30:00", snap.Display)

	// Frozen: advancing the wall clock changes nothing.
	now = now.Add(2 * time.Hour)
	assert.Equal(t, 8*3600+30*60, timer.Snapshot().ElapsedSeconds)
}

func TestTimerFutureCheckInClampsToZero(t *testing.T) {
	now := time.Date(2026, 1, 15, 8, 59, 0, 0, time.UTC)
	timer := NewTimer(func() time.Time { return now }, testLogger())

	timer.Apply(attendance.StatusResponse{
		IsClockedIn: true,
		CheckIn:     strPtr("09:00:00"),
	})

	snap := timer.Snapshot()
	assert.Equal(t, StateRunning, snap.State)
	assert.Equal(t, 0, snap.ElapsedSeconds)
	assert.Equal(t, "00:00:00", snap.Display)
}

func TestTimerInvalidCheckInResetsToIdle(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	timer := NewTimer(func() time.Time { return now }, testLogger())

	timer.Apply(attendance.StatusResponse{
		IsClockedIn: true,
		CheckIn:     strPtr("not-a-time"),
	})

	assert.Equal(t, StateIdle, timer.State())
}

func TestTimerReturnsToIdleWhenStatusClears(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	timer := NewTimer(func() time.Time { return now }, testLogger())

	timer.Apply(attendance.StatusResponse{
		IsClockedIn: true,
		CheckIn:     strPtr("09:00:00"),
	})
	assert.Equal(t, StateRunning, timer.State())

	timer.Apply(attendance.StatusResponse{})
	snap := timer.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 0, snap.ElapsedSeconds)
}
