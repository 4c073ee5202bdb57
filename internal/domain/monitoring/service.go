package monitoring

import (
	"context"
)

// MonitoringService defines business logic for capture schedules and
// uploaded screen captures.
type MonitoringService interface {
	// GetCurrentSchedule returns the authenticated company's schedule
	GetCurrentSchedule(ctx context.Context) (ScheduleResponse, error)

	// UpdateSchedule replaces the company's schedule (admin)
	UpdateSchedule(ctx context.Context, req UpdateScheduleRequest) (ScheduleResponse, error)

	// UploadCapture stores one capture image and its metadata
	UploadCapture(ctx context.Context, req UploadCaptureRequest) (CaptureResponse, error)

	// ListCaptures retrieves captures with filters (admin)
	ListCaptures(ctx context.Context, filter CaptureFilter) (ListCapturesResponse, error)

	// FlagCapture marks or unmarks a capture as suspicious (admin)
	FlagCapture(ctx context.Context, req FlagCaptureRequest) (CaptureResponse, error)

	// DeleteCapture removes a capture row and its stored image (admin)
	DeleteCapture(ctx context.Context, id string) error

	// GetStats returns capture counters for the company (admin)
	GetStats(ctx context.Context) (CaptureStatsResponse, error)

	// PurgeExpired deletes captures past their retention window; returns
	// the number removed. Called from the cron scheduler.
	PurgeExpired(ctx context.Context) (int, error)
}
