package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
// All methods take companyID to prevent cross-company data access.
type AttendanceRepository interface {
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByEmployeeAndDate retrieves the record for one employee on one
	// calendar date; used to reject a second check-in.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Attendance, error)

	Update(ctx context.Context, attendance Attendance) error

	// List retrieves records with filters and pagination (manager view)
	List(ctx context.Context, filter AttendanceFilter, companyID string) ([]Attendance, int64, error)

	// ListByEmployee retrieves records for a single employee
	ListByEmployee(ctx context.Context, employeeID string, filter AttendanceFilter, companyID string) ([]Attendance, int64, error)
}
