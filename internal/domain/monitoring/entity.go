package monitoring

import "time"

// CaptureSchedule is the organization-wide screen capture configuration.
// One row per company; work_start/work_end bound the daily capture window.
type CaptureSchedule struct {
	ID             string
	CompanyID      string
	IsEnabled      bool
	WorkStart      string // "HH:MM", 24h clock
	WorkEnd        string // "HH:MM", must be after WorkStart (same-day window)
	CapturesPerDay int
	RetentionDays  int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ScreenCapture is one uploaded screen frame from a monitored employee.
type ScreenCapture struct {
	ID         string
	CompanyID  string
	EmployeeID string
	ImagePath  string
	SizeBytes  int64
	CapturedAt time.Time
	IsFlagged  bool
	CreatedAt  time.Time

	// DTO
	EmployeeName *string
	ImageURL     *string
}
