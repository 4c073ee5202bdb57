package monitoring

import (
	"context"
	"time"
)

// ScheduleRepository persists the per-company capture schedule singleton.
type ScheduleRepository interface {
	// GetByCompanyID retrieves the company's schedule
	GetByCompanyID(ctx context.Context, companyID string) (CaptureSchedule, error)

	// Upsert creates or replaces the company's schedule
	Upsert(ctx context.Context, schedule CaptureSchedule) (CaptureSchedule, error)
}

// CaptureRepository persists uploaded screen captures.
// All read/write methods take companyID to prevent cross-company access.
type CaptureRepository interface {
	Create(ctx context.Context, capture ScreenCapture) (ScreenCapture, error)

	GetByID(ctx context.Context, id string, companyID string) (ScreenCapture, error)

	List(ctx context.Context, filter CaptureFilter, companyID string) ([]ScreenCapture, int64, error)

	SetFlag(ctx context.Context, id string, companyID string, flagged bool) error

	Delete(ctx context.Context, id string, companyID string) error

	// Stats returns today's count, flagged count, and total for a company.
	Stats(ctx context.Context, companyID string, startOfDay time.Time) (CaptureStatsResponse, error)

	// ListExpired returns captures older than their company's retention window.
	ListExpired(ctx context.Context, now time.Time) ([]ScreenCapture, error)
}
