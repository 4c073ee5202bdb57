package monitoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/hrsuite/presence-monitor-go/internal/domain/monitoring"
	"github.com/hrsuite/presence-monitor-go/internal/pkg/sse"
	"github.com/hrsuite/presence-monitor-go/internal/pkg/storage"
	"github.com/hrsuite/presence-monitor-go/internal/pkg/validator"
)

type MonitoringServiceImpl struct {
	monitoring.ScheduleRepository
	monitoring.CaptureRepository
	fileStorage storage.FileStorage
	eventHub    *sse.Hub
}

func NewMonitoringService(
	scheduleRepo monitoring.ScheduleRepository,
	captureRepo monitoring.CaptureRepository,
	fileStorage storage.FileStorage,
	eventHub *sse.Hub,
) monitoring.MonitoringService {
	return &MonitoringServiceImpl{
		ScheduleRepository: scheduleRepo,
		CaptureRepository:  captureRepo,
		fileStorage:        fileStorage,
		eventHub:           eventHub,
	}
}

func identityFromClaims(ctx context.Context) (employeeID string, companyID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	// employee_id may be absent for admin console tokens
	employeeID, _ = claims["employee_id"].(string)

	return employeeID, companyID, nil
}

func toScheduleResponse(sched monitoring.CaptureSchedule) monitoring.ScheduleResponse {
	return monitoring.ScheduleResponse{
		IsEnabled:      sched.IsEnabled,
		WorkStart:      sched.WorkStart,
		WorkEnd:        sched.WorkEnd,
		CapturesPerDay: sched.CapturesPerDay,
		RetentionDays:  sched.RetentionDays,
	}
}

// GetCurrentSchedule implements monitoring.MonitoringService.
func (m *MonitoringServiceImpl) GetCurrentSchedule(ctx context.Context) (monitoring.ScheduleResponse, error) {
	_, companyID, err := identityFromClaims(ctx)
	if err != nil {
		return monitoring.ScheduleResponse{}, err
	}

	sched, err := m.ScheduleRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		return monitoring.ScheduleResponse{}, err
	}

	return toScheduleResponse(sched), nil
}

// UpdateSchedule implements monitoring.MonitoringService.
func (m *MonitoringServiceImpl) UpdateSchedule(ctx context.Context, req monitoring.UpdateScheduleRequest) (monitoring.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return monitoring.ScheduleResponse{}, err
	}

	_, companyID, err := identityFromClaims(ctx)
	if err != nil {
		return monitoring.ScheduleResponse{}, err
	}

	sched := monitoring.CaptureSchedule{
		ID:             uuid.NewString(),
		CompanyID:      companyID,
		IsEnabled:      req.IsEnabled,
		WorkStart:      req.WorkStart,
		WorkEnd:        req.WorkEnd,
		CapturesPerDay: req.CapturesPerDay,
		RetentionDays:  req.RetentionDays,
	}

	saved, err := m.ScheduleRepository.Upsert(ctx, sched)
	if err != nil {
		return monitoring.ScheduleResponse{}, err
	}

	return toScheduleResponse(saved), nil
}

// UploadCapture implements monitoring.MonitoringService.
func (m *MonitoringServiceImpl) UploadCapture(ctx context.Context, req monitoring.UploadCaptureRequest) (monitoring.CaptureResponse, error) {
	if err := req.Validate(); err != nil {
		return monitoring.CaptureResponse{}, err
	}

	employeeID, companyID, err := identityFromClaims(ctx)
	if err != nil {
		return monitoring.CaptureResponse{}, err
	}
	if employeeID == "" {
		return monitoring.CaptureResponse{}, monitoring.ErrUnauthorized
	}

	sched, err := m.ScheduleRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		if errors.Is(err, monitoring.ErrScheduleNotFound) {
			return monitoring.CaptureResponse{}, monitoring.ErrMonitoringDisabled
		}
		return monitoring.CaptureResponse{}, err
	}
	if !sched.IsEnabled {
		return monitoring.CaptureResponse{}, monitoring.ErrMonitoringDisabled
	}

	captureID := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(req.FileHeader.Filename))
	storagePath := fmt.Sprintf("captures/%s/%s/%s%s", companyID, employeeID, captureID, ext)

	storedPath, err := m.fileStorage.Upload(ctx, req.File, storagePath, req.FileHeader.Header.Get("Content-Type"))
	if err != nil {
		return monitoring.CaptureResponse{}, fmt.Errorf("failed to store capture image: %w", err)
	}

	capture := monitoring.ScreenCapture{
		ID:         captureID,
		CompanyID:  companyID,
		EmployeeID: employeeID,
		ImagePath:  storedPath,
		SizeBytes:  req.FileHeader.Size,
		CapturedAt: time.Now().UTC(),
	}

	created, err := m.CaptureRepository.Create(ctx, capture)
	if err != nil {
		// Don't leave an orphaned file behind
		_ = m.fileStorage.Delete(ctx, storedPath)
		return monitoring.CaptureResponse{}, err
	}

	resp, err := m.toCaptureResponse(ctx, created)
	if err != nil {
		return monitoring.CaptureResponse{}, err
	}

	if m.eventHub != nil {
		m.eventHub.Publish(companyID, sse.Event{
			Event: "capture_uploaded",
			Data:  resp,
		})
	}

	return resp, nil
}

func (m *MonitoringServiceImpl) toCaptureResponse(ctx context.Context, capture monitoring.ScreenCapture) (monitoring.CaptureResponse, error) {
	url, err := m.fileStorage.GetURL(ctx, capture.ImagePath, 24*time.Hour)
	if err != nil {
		return monitoring.CaptureResponse{}, fmt.Errorf("failed to build capture URL: %w", err)
	}

	return monitoring.CaptureResponse{
		ID:           capture.ID,
		EmployeeID:   capture.EmployeeID,
		EmployeeName: capture.EmployeeName,
		ImageURL:     url,
		CapturedAt:   capture.CapturedAt.Format(time.RFC3339),
		IsFlagged:    capture.IsFlagged,
	}, nil
}

// ListCaptures implements monitoring.MonitoringService.
func (m *MonitoringServiceImpl) ListCaptures(ctx context.Context, filter monitoring.CaptureFilter) (monitoring.ListCapturesResponse, error) {
	_, companyID, err := identityFromClaims(ctx)
	if err != nil {
		return monitoring.ListCapturesResponse{}, err
	}

	captures, total, err := m.CaptureRepository.List(ctx, filter, companyID)
	if err != nil {
		return monitoring.ListCapturesResponse{}, err
	}

	responses := make([]monitoring.CaptureResponse, 0, len(captures))
	for _, capture := range captures {
		resp, err := m.toCaptureResponse(ctx, capture)
		if err != nil {
			return monitoring.ListCapturesResponse{}, err
		}
		responses = append(responses, resp)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	return monitoring.ListCapturesResponse{
		Captures:   responses,
		Page:       page,
		Limit:      limit,
		TotalItems: total,
	}, nil
}

// FlagCapture implements monitoring.MonitoringService.
func (m *MonitoringServiceImpl) FlagCapture(ctx context.Context, req monitoring.FlagCaptureRequest) (monitoring.CaptureResponse, error) {
	_, companyID, err := identityFromClaims(ctx)
	if err != nil {
		return monitoring.CaptureResponse{}, err
	}

	// Reject malformed IDs before they reach the uuid column.
	if !validator.IsValidUUID(req.ID) {
		return monitoring.CaptureResponse{}, monitoring.ErrCaptureNotFound
	}

	if err := m.CaptureRepository.SetFlag(ctx, req.ID, companyID, req.IsFlagged); err != nil {
		return monitoring.CaptureResponse{}, err
	}

	capture, err := m.CaptureRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return monitoring.CaptureResponse{}, err
	}

	return m.toCaptureResponse(ctx, capture)
}

// DeleteCapture implements monitoring.MonitoringService.
func (m *MonitoringServiceImpl) DeleteCapture(ctx context.Context, id string) error {
	_, companyID, err := identityFromClaims(ctx)
	if err != nil {
		return err
	}

	if !validator.IsValidUUID(id) {
		return monitoring.ErrCaptureNotFound
	}

	capture, err := m.CaptureRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}

	if err := m.CaptureRepository.Delete(ctx, id, companyID); err != nil {
		return err
	}

	if err := m.fileStorage.Delete(ctx, capture.ImagePath); err != nil {
		slog.Error("Failed to delete capture image from storage", "capture_id", id, "path", capture.ImagePath, "error", err)
	}

	return nil
}

// GetStats implements monitoring.MonitoringService.
func (m *MonitoringServiceImpl) GetStats(ctx context.Context) (monitoring.CaptureStatsResponse, error) {
	_, companyID, err := identityFromClaims(ctx)
	if err != nil {
		return monitoring.CaptureStatsResponse{}, err
	}

	startOfDay := time.Now().UTC().Truncate(24 * time.Hour)
	return m.CaptureRepository.Stats(ctx, companyID, startOfDay)
}

// PurgeExpired implements monitoring.MonitoringService.
func (m *MonitoringServiceImpl) PurgeExpired(ctx context.Context) (int, error) {
	expired, err := m.CaptureRepository.ListExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	purged := 0
	for _, capture := range expired {
		if err := m.CaptureRepository.Delete(ctx, capture.ID, capture.CompanyID); err != nil {
			slog.Error("Failed to purge expired capture", "capture_id", capture.ID, "error", err)
			continue
		}
		if err := m.fileStorage.Delete(ctx, capture.ImagePath); err != nil {
			slog.Error("Failed to delete expired capture image", "capture_id", capture.ID, "path", capture.ImagePath, "error", err)
		}
		purged++
	}

	return purged, nil
}
