package attendance

import (
	"github.com/hrsuite/presence-monitor-go/internal/pkg/validator"
)

// StatusResponse mirrors what the agent's presence timer consumes:
// whether a session is open today and the raw times of day.
type StatusResponse struct {
	IsClockedIn bool    `json:"is_clocked_in"`
	CheckIn     *string `json:"check_in,omitempty"`  // "HH:MM:SS"
	CheckOut    *string `json:"check_out,omitempty"` // "HH:MM:SS"
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	CheckIn      *string `json:"check_in,omitempty"`
	CheckOut     *string `json:"check_out,omitempty"`
	WorkSeconds  *int    `json:"work_seconds,omitempty"`
	Status       string  `json:"status"`
}

type ListAttendanceResponse struct {
	Attendances []AttendanceResponse `json:"attendances"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalItems  int64                `json:"total_items"`
}

type AttendanceFilter struct {
	EmployeeID string
	Month      string // "YYYY-MM", optional
	Page       int
	Limit      int
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != "" {
		if _, ok := validator.IsValidDate(f.Month + "-01"); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
