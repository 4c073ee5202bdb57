package presence

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hrsuite/presence-monitor-go/internal/domain/attendance"
	"github.com/hrsuite/presence-monitor-go/internal/pkg/clockmath"
)

// StatusFetcher reports today's attendance for the agent's user.
type StatusFetcher interface {
	CurrentStatus(ctx context.Context) (attendance.StatusResponse, error)
}

type State int

const (
	// StateIdle means no check-in exists today.
	StateIdle State = iota
	// StateRunning means a check-in exists without a check-out; elapsed
	// time grows against the wall clock.
	StateRunning
	// StateStopped means today's session is complete; elapsed time is
	// frozen at its final value.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time view of the timer for display.
type Snapshot struct {
	State          State
	ElapsedSeconds int
	Display        string // "HH:MM:SS"
}

// Timer derives elapsed work time from attendance status. The check-in
// instant is the single anchor; elapsed time is recomputed from it on
// every Snapshot, so ticks can be dropped or delayed without drift.
type Timer struct {
	now    func() time.Time
	logger *slog.Logger

	mu     sync.Mutex
	state  State
	anchor time.Time
	frozen int
}

func NewTimer(now func() time.Time, logger *slog.Logger) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{
		now:    now,
		logger: logger,
		state:  StateIdle,
	}
}

// Apply folds a fetched attendance status into the timer. A running
// period keeps its original anchor across refetches; a malformed time
// from the backend resets the timer to idle rather than guessing.
func (t *Timer) Apply(status attendance.StatusResponse) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case status.IsClockedIn && status.CheckIn != nil:
		anchor, err := clockmath.ToInstant(t.now(), *status.CheckIn)
		if err != nil {
			t.logger.Error("Invalid check-in time from backend", "check_in", *status.CheckIn, "error", err)
			t.state = StateIdle
			t.anchor = time.Time{}
			return
		}
		if t.state == StateRunning && t.anchor.Equal(anchor) {
			return
		}
		t.state = StateRunning
		t.anchor = anchor
		t.frozen = 0

	case status.CheckIn != nil && status.CheckOut != nil:
		start, err := clockmath.ToInstant(t.now(), *status.CheckIn)
		if err != nil {
			t.logger.Error("Invalid check-in time from backend", "check_in", *status.CheckIn, "error", err)
			t.state = StateIdle
			return
		}
		end, err := clockmath.ToInstant(t.now(), *status.CheckOut)
		if err != nil {
			t.logger.Error("Invalid check-out time from backend", "check_out", *status.CheckOut, "error", err)
			t.state = StateIdle
			return
		}
		t.state = StateStopped
		t.anchor = start
		t.frozen = clockmath.ElapsedSeconds(start, end)

	default:
		t.state = StateIdle
		t.anchor = time.Time{}
		t.frozen = 0
	}
}

// Snapshot recomputes the display from the anchor at the current time.
func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := 0
	switch t.state {
	case StateRunning:
		elapsed = clockmath.ElapsedSeconds(t.anchor, t.now())
	case StateStopped:
		elapsed = t.frozen
	}

	return Snapshot{
		State:          t.state,
		ElapsedSeconds: elapsed,
		Display:        clockmath.FormatElapsed(elapsed),
	}
}

// State returns the current timer state.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
