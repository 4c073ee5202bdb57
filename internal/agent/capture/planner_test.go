package capture

import (
	"math/rand"
	"testing"
	"time"

	"github.com/hrsuite/presence-monitor-go/internal/domain/monitoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchedule(capturesPerDay int) monitoring.ScheduleResponse {
	return monitoring.ScheduleResponse{
		IsEnabled:      true,
		WorkStart:      "09:00",
		WorkEnd:        "17:00",
		CapturesPerDay: capturesPerDay,
		RetentionDays:  30,
	}
}

func TestPlannerInstantsWithinWindow(t *testing.T) {
	planner := NewPlanner(rand.New(rand.NewSource(1)))
	now := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

	instants, err := planner.Plan(testSchedule(20), now)
	require.NoError(t, err)
	require.Len(t, instants, 20)

	windowEnd := time.Date(2026, 1, 15, 17, 0, 0, 0, time.UTC)
	for _, at := range instants {
		assert.False(t, at.Before(now), "instant %v before now %v", at, now)
		assert.True(t, at.Before(windowEnd), "instant %v at or after window end %v", at, windowEnd)
	}
}

func TestPlannerBeforeWorkStart(t *testing.T) {
	planner := NewPlanner(rand.New(rand.NewSource(2)))
	now := time.Date(2026, 1, 15, 7, 0, 0, 0, time.UTC)

	instants, err := planner.Plan(testSchedule(10), now)
	require.NoError(t, err)
	require.Len(t, instants, 10)

	windowStart := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	for _, at := range instants {
		assert.False(t, at.Before(windowStart), "instant %v before work start", at)
	}
}

func TestPlannerWindowClosed(t *testing.T) {
	planner := NewPlanner(rand.New(rand.NewSource(3)))
	now := time.Date(2026, 1, 15, 18, 0, 0, 0, time.UTC)

	instants, err := planner.Plan(testSchedule(5), now)
	require.NoError(t, err)
	assert.Empty(t, instants)
}

func TestPlannerExactlyAtWindowEnd(t *testing.T) {
	planner := NewPlanner(rand.New(rand.NewSource(4)))
	now := time.Date(2026, 1, 15, 17, 0, 0, 0, time.UTC)

	instants, err := planner.Plan(testSchedule(5), now)
	require.NoError(t, err)
	assert.Empty(t, instants)
}

func TestPlannerInvalidTimes(t *testing.T) {
	planner := NewPlanner(rand.New(rand.NewSource(5)))
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	schedule := testSchedule(5)
	schedule.WorkStart = "25:00"
	_, err := planner.Plan(schedule, now)
	assert.Error(t, err)

	schedule = testSchedule(5)
	schedule.WorkEnd = "bogus"
	_, err = planner.Plan(schedule, now)
	assert.Error(t, err)
}

func TestPlannerDeterministicWithSeed(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	first, err := NewPlanner(rand.New(rand.NewSource(42))).Plan(testSchedule(8), now)
	require.NoError(t, err)
	second, err := NewPlanner(rand.New(rand.NewSource(42))).Plan(testSchedule(8), now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPlannerPreservesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	planner := NewPlanner(rand.New(rand.NewSource(6)))
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, loc)

	instants, err := planner.Plan(testSchedule(3), now)
	require.NoError(t, err)
	require.NotEmpty(t, instants)
	for _, at := range instants {
		assert.Equal(t, loc, at.Location())
	}
}
