package monitoring

import (
	"mime/multipart"
	"strings"

	"github.com/hrsuite/presence-monitor-go/internal/pkg/validator"
)

// ========================================
// SCHEDULE DTOs
// ========================================

type UpdateScheduleRequest struct {
	IsEnabled      bool   `json:"is_enabled"`
	WorkStart      string `json:"work_start"`
	WorkEnd        string `json:"work_end"`
	CapturesPerDay int    `json:"captures_per_day"`
	RetentionDays  int    `json:"retention_days"`
}

func (r *UpdateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidTimeOfDay(r.WorkStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_start",
			Message: "work_start must be a valid HH:MM time",
		})
	}

	if !validator.IsValidTimeOfDay(r.WorkEnd) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_end",
			Message: "work_end must be a valid HH:MM time",
		})
	}

	// Zero-padded HH:MM compares correctly as strings. Cross-midnight
	// windows are not supported.
	if validator.IsValidTimeOfDay(r.WorkStart) && validator.IsValidTimeOfDay(r.WorkEnd) && r.WorkStart >= r.WorkEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "work_end",
			Message: "work_end must be after work_start",
		})
	}

	if r.CapturesPerDay < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "captures_per_day",
			Message: "captures_per_day must be at least 1",
		})
	}

	if r.RetentionDays < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "retention_days",
			Message: "retention_days must be at least 1",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ScheduleResponse struct {
	IsEnabled      bool   `json:"is_enabled"`
	WorkStart      string `json:"work_start"`
	WorkEnd        string `json:"work_end"`
	CapturesPerDay int    `json:"captures_per_day"`
	RetentionDays  int    `json:"retention_days"`
}

// ========================================
// CAPTURE DTOs
// ========================================

type UploadCaptureRequest struct {
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *UploadCaptureRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FileHeader == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "image",
			Message: "capture image is required",
		})
	} else {
		filename := r.FileHeader.Filename
		idx := strings.LastIndex(filename, ".")
		ext := ""
		if idx >= 0 {
			ext = strings.ToLower(filename[idx:])
		}
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			errs = append(errs, validator.ValidationError{
				Field:   "image",
				Message: "invalid file type: only jpg, jpeg, png allowed",
			})
		} else if r.FileHeader.Size > 10<<20 { // 10MB
			errs = append(errs, validator.ValidationError{
				Field:   "image",
				Message: "capture image size must not exceed 10MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CaptureFilter struct {
	EmployeeID string
	Flagged    *bool
	Page       int
	Limit      int
}

type FlagCaptureRequest struct {
	ID        string `json:"-"`
	IsFlagged bool   `json:"is_flagged"`
}

type CaptureResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	ImageURL     string  `json:"image_url"`
	CapturedAt   string  `json:"captured_at"`
	IsFlagged    bool    `json:"is_flagged"`
}

type ListCapturesResponse struct {
	Captures   []CaptureResponse `json:"captures"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalItems int64             `json:"total_items"`
}

type CaptureStatsResponse struct {
	Today   int64 `json:"today"`
	Flagged int64 `json:"flagged"`
	Total   int64 `json:"total"`
}
