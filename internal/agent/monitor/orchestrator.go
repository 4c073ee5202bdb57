package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hrsuite/presence-monitor-go/internal/agent/capture"
	"github.com/hrsuite/presence-monitor-go/internal/agent/presence"
	"github.com/hrsuite/presence-monitor-go/internal/domain/monitoring"
)

// ScheduleFetcher reports the company's capture schedule.
type ScheduleFetcher interface {
	GetCaptureSchedule(ctx context.Context) (monitoring.ScheduleResponse, error)
}

// RoleEmployee is the only role whose screen is captured. Admins and
// owners run the presence timer alone.
const RoleEmployee = "employee"

// Orchestrator ties the presence timer and the capture session to the
// backend. The timer always runs; the capture session starts only for
// employees with monitoring enabled, and a capture failure never takes
// the timer down with it.
type Orchestrator struct {
	role            string
	pollInterval    time.Duration
	timer           *presence.Timer
	statusFetcher   presence.StatusFetcher
	scheduleFetcher ScheduleFetcher
	session         *capture.Session
	logger          *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewOrchestrator(
	role string,
	pollInterval time.Duration,
	timer *presence.Timer,
	statusFetcher presence.StatusFetcher,
	scheduleFetcher ScheduleFetcher,
	session *capture.Session,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		role:            role,
		pollInterval:    pollInterval,
		timer:           timer,
		statusFetcher:   statusFetcher,
		scheduleFetcher: scheduleFetcher,
		session:         session,
		logger:          logger,
	}
}

// Start fetches the initial state and launches the status poll loop.
// It returns once the loop is running.
func (o *Orchestrator) Start(ctx context.Context) {
	ctx, o.cancel = context.WithCancel(ctx)

	o.refreshStatus(ctx)
	o.startCapture(ctx)

	o.wg.Add(1)
	go o.pollLoop(ctx)
}

// Stop shuts the poll loop down and releases the capture session.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()
	o.session.Cancel()
	o.logger.Info("Monitoring stopped")
}

// Timer exposes the presence timer for display.
func (o *Orchestrator) Timer() *presence.Timer {
	return o.timer
}

func (o *Orchestrator) pollLoop(ctx context.Context) {
	defer o.wg.Done()

	ticker := time.NewTicker(o.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.refreshStatus(ctx)
		}
	}
}

func (o *Orchestrator) refreshStatus(ctx context.Context) {
	status, err := o.statusFetcher.CurrentStatus(ctx)
	if err != nil {
		// Keep the last known state; the next poll retries.
		o.logger.Error("Failed to fetch attendance status", "error", err)
		return
	}
	o.timer.Apply(status)
}

// startCapture starts the capture session when the agent's role and the
// company schedule both allow it. Monitoring being unavailable is not
// an agent failure.
func (o *Orchestrator) startCapture(ctx context.Context) {
	if o.role != RoleEmployee {
		o.logger.Info("Screen capture skipped for role", "role", o.role)
		return
	}

	schedule, err := o.scheduleFetcher.GetCaptureSchedule(ctx)
	if err != nil {
		o.logger.Warn("Capture schedule unavailable, monitoring disabled", "error", err)
		return
	}
	if !schedule.IsEnabled {
		o.logger.Info("Screen capture disabled by company schedule")
		return
	}

	if err := o.session.Start(ctx, schedule); err != nil {
		o.logger.Warn("Capture session failed to start", "error", err)
	}
}
