package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens today's session for the authenticated employee
	CheckIn(ctx context.Context) (StatusResponse, error)

	// CheckOut closes today's open session
	CheckOut(ctx context.Context) (StatusResponse, error)

	// CurrentStatus reports today's session state for the agent's timer
	CurrentStatus(ctx context.Context) (StatusResponse, error)

	// ListAttendance retrieves attendance records with filters (manager)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetMyAttendance retrieves records for the authenticated employee
	GetMyAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
}
