package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/hrsuite/presence-monitor-go/internal/domain/attendance"
	"github.com/hrsuite/presence-monitor-go/internal/pkg/database"
	"github.com/hrsuite/presence-monitor-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type AttendanceServiceImpl struct {
	db database.TxBeginner
	attendance.AttendanceRepository
}

func NewAttendanceService(db database.TxBeginner, attendanceRepo attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
	}
}

// identityFromClaims extracts the employee and company the token belongs to.
func identityFromClaims(ctx context.Context) (employeeID string, companyID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, ok = claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return employeeID, companyID, nil
}

// timePtrToClock safely converts a *time.Time to an "HH:MM:SS" string.
func timePtrToClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("15:04:05")
	return &formatted
}

func statusFromRecord(att *attendance.Attendance) attendance.StatusResponse {
	if att == nil || att.CheckIn == nil {
		return attendance.StatusResponse{IsClockedIn: false}
	}
	return attendance.StatusResponse{
		IsClockedIn: att.CheckOut == nil,
		CheckIn:     timePtrToClock(att.CheckIn),
		CheckOut:    timePtrToClock(att.CheckOut),
	}
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.StatusResponse, error) {
	employeeID, companyID, err := identityFromClaims(ctx)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	// Check-then-create runs in one transaction so two concurrent
	// check-ins cannot both pass the existence check.
	var created attendance.Attendance
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		existing, err := a.AttendanceRepository.GetByEmployeeAndDate(txCtx, employeeID, today, companyID)
		if err != nil {
			return fmt.Errorf("failed to check today's attendance: %w", err)
		}
		if existing != nil && existing.CheckIn != nil {
			return attendance.ErrAlreadyCheckedIn
		}

		record := attendance.Attendance{
			ID:         uuid.NewString(),
			EmployeeID: employeeID,
			CompanyID:  companyID,
			Date:       today,
			CheckIn:    &now,
			Status:     "open",
		}

		created, err = a.AttendanceRepository.Create(txCtx, record)
		return err
	})
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	return statusFromRecord(&created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.StatusResponse, error) {
	employeeID, companyID, err := identityFromClaims(ctx)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	// Read-modify-write in one transaction so two concurrent check-outs
	// cannot both see the record as still open.
	var closed *attendance.Attendance
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		existing, err := a.AttendanceRepository.GetByEmployeeAndDate(txCtx, employeeID, today, companyID)
		if err != nil {
			return fmt.Errorf("failed to check today's attendance: %w", err)
		}
		if existing == nil || existing.CheckIn == nil {
			return attendance.ErrNotCheckedIn
		}
		if existing.CheckOut != nil {
			return attendance.ErrAlreadyCheckedOut
		}

		workSeconds := int(now.Sub(*existing.CheckIn) / time.Second)
		existing.CheckOut = &now
		existing.WorkSeconds = &workSeconds
		existing.Status = "closed"

		if err := a.AttendanceRepository.Update(txCtx, *existing); err != nil {
			return err
		}

		closed = existing
		return nil
	})
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	return statusFromRecord(closed), nil
}

// CurrentStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CurrentStatus(ctx context.Context) (attendance.StatusResponse, error) {
	employeeID, companyID, err := identityFromClaims(ctx)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today, companyID)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	return statusFromRecord(existing), nil
}

func toAttendanceResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:           att.ID,
		EmployeeID:   att.EmployeeID,
		EmployeeName: att.EmployeeName,
		Date:         att.Date.Format("2006-01-02"),
		CheckIn:      timePtrToClock(att.CheckIn),
		CheckOut:     timePtrToClock(att.CheckOut),
		WorkSeconds:  att.WorkSeconds,
		Status:       att.Status,
	}
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	_, companyID, err := identityFromClaims(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return buildListResponse(records, total, filter), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	employeeID, companyID, err := identityFromClaims(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, filter, companyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return buildListResponse(records, total, filter), nil
}

func buildListResponse(records []attendance.Attendance, total int64, filter attendance.AttendanceFilter) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, toAttendanceResponse(att))
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	return attendance.ListAttendanceResponse{
		Attendances: responses,
		Page:        page,
		Limit:       limit,
		TotalItems:  total,
	}
}
