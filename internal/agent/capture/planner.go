package capture

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hrsuite/presence-monitor-go/internal/domain/monitoring"
	"github.com/hrsuite/presence-monitor-go/internal/pkg/clockmath"
)

// Planner draws the random capture instants for a work day. It is pure
// apart from the injected random source, so tests can seed it.
type Planner struct {
	rng *rand.Rand
}

func NewPlanner(rng *rand.Rand) *Planner {
	return &Planner{rng: rng}
}

// Plan returns the capture instants for the remainder of today's window.
//
// The window starts at max(now, work start) and ends at work end, both
// resolved against now's calendar day. A window that has already closed
// yields an empty plan. Instants are drawn independently and uniformly,
// so duplicates are possible.
func (p *Planner) Plan(schedule monitoring.ScheduleResponse, now time.Time) ([]time.Time, error) {
	windowStart, err := clockmath.ToInstant(now, schedule.WorkStart)
	if err != nil {
		return nil, fmt.Errorf("invalid work_start %q: %w", schedule.WorkStart, err)
	}

	windowEnd, err := clockmath.ToInstant(now, schedule.WorkEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid work_end %q: %w", schedule.WorkEnd, err)
	}

	effectiveStart := windowStart
	if now.After(effectiveStart) {
		effectiveStart = now
	}

	available := windowEnd.Sub(effectiveStart)
	if available <= 0 {
		return nil, nil
	}

	instants := make([]time.Time, 0, schedule.CapturesPerDay)
	for i := 0; i < schedule.CapturesPerDay; i++ {
		offset := time.Duration(p.rng.Int63n(int64(available)))
		instants = append(instants, effectiveStart.Add(offset))
	}

	return instants, nil
}
