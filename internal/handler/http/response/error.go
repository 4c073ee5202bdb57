package response

import (
	"errors"
	"net/http"

	"github.com/hrsuite/presence-monitor-go/internal/domain/attendance"
	"github.com/hrsuite/presence-monitor-go/internal/domain/monitoring"
	"github.com/hrsuite/presence-monitor-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "Not checked in yet", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Unauthorized to access this attendance record")

	// Monitoring domain errors
	case errors.Is(err, monitoring.ErrScheduleNotFound):
		NotFound(w, "Capture schedule not found")
	case errors.Is(err, monitoring.ErrCaptureNotFound):
		NotFound(w, "Screen capture not found")
	case errors.Is(err, monitoring.ErrMonitoringDisabled):
		Forbidden(w, "Screen capture monitoring is disabled")
	case errors.Is(err, monitoring.ErrUnauthorized):
		Forbidden(w, "Unauthorized to access monitoring data")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
