package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/hrsuite/presence-monitor-go/internal/domain/monitoring"
)

type MonitoringJobs struct {
	monitoringSvc monitoring.MonitoringService
}

func NewMonitoringJobs(monitoringSvc monitoring.MonitoringService) *MonitoringJobs {
	return &MonitoringJobs{monitoringSvc: monitoringSvc}
}

func (j *MonitoringJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_expired_captures", 1*time.Hour, j.PurgeExpiredCaptures)
}

// PurgeExpiredCaptures removes screen captures older than their company's
// retention window, files included.
func (j *MonitoringJobs) PurgeExpiredCaptures(ctx context.Context) error {
	purged, err := j.monitoringSvc.PurgeExpired(ctx)
	if err != nil {
		return err
	}

	if purged > 0 {
		slog.Info("Cron: Purged expired screen captures", "count", purged)
	}
	return nil
}
