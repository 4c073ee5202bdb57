package monitoring

import "errors"

// Monitoring domain errors
var (
	ErrScheduleNotFound   = errors.New("capture schedule not found for this company")
	ErrCaptureNotFound    = errors.New("screen capture not found")
	ErrMonitoringDisabled = errors.New("screen capture monitoring is disabled for this company")
	ErrUnauthorized       = errors.New("unauthorized to access monitoring data")
)
