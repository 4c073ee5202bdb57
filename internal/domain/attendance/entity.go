package attendance

import "time"

// Attendance is one employee work day: a check-in and, once the day is
// closed, a check-out. At most one open session per employee per day.
type Attendance struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	Date        time.Time
	CheckIn     *time.Time
	CheckOut    *time.Time
	WorkSeconds *int
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName *string
}
