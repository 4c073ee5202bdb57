package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hrsuite/presence-monitor-go/internal/domain/monitoring"
	"github.com/hrsuite/presence-monitor-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) monitoring.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// GetByCompanyID implements monitoring.ScheduleRepository.
func (s *scheduleRepository) GetByCompanyID(ctx context.Context, companyID string) (monitoring.CaptureSchedule, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, company_id, is_enabled, work_start, work_end,
			   captures_per_day, retention_days, created_at, updated_at
		FROM capture_schedules
		WHERE company_id = $1
	`

	var sched monitoring.CaptureSchedule
	err := q.QueryRow(ctx, query, companyID).Scan(
		&sched.ID, &sched.CompanyID, &sched.IsEnabled, &sched.WorkStart, &sched.WorkEnd,
		&sched.CapturesPerDay, &sched.RetentionDays, &sched.CreatedAt, &sched.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return monitoring.CaptureSchedule{}, monitoring.ErrScheduleNotFound
		}
		return monitoring.CaptureSchedule{}, fmt.Errorf("failed to get capture schedule: %w", err)
	}

	return sched, nil
}

// Upsert implements monitoring.ScheduleRepository.
func (s *scheduleRepository) Upsert(ctx context.Context, sched monitoring.CaptureSchedule) (monitoring.CaptureSchedule, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO capture_schedules (
			id, company_id, is_enabled, work_start, work_end, captures_per_day, retention_days
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (company_id) DO UPDATE SET
			is_enabled = EXCLUDED.is_enabled,
			work_start = EXCLUDED.work_start,
			work_end = EXCLUDED.work_end,
			captures_per_day = EXCLUDED.captures_per_day,
			retention_days = EXCLUDED.retention_days,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		sched.ID, sched.CompanyID, sched.IsEnabled, sched.WorkStart, sched.WorkEnd,
		sched.CapturesPerDay, sched.RetentionDays,
	).Scan(&sched.ID, &sched.CreatedAt, &sched.UpdatedAt)

	if err != nil {
		return monitoring.CaptureSchedule{}, fmt.Errorf("failed to upsert capture schedule: %w", err)
	}

	return sched, nil
}

type captureRepository struct {
	db *database.DB
}

func NewCaptureRepository(db *database.DB) monitoring.CaptureRepository {
	return &captureRepository{db: db}
}

// Create implements monitoring.CaptureRepository.
func (c *captureRepository) Create(ctx context.Context, capture monitoring.ScreenCapture) (monitoring.ScreenCapture, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO screen_captures (
			id, company_id, employee_id, image_path, size_bytes, captured_at, is_flagged
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		capture.ID, capture.CompanyID, capture.EmployeeID, capture.ImagePath,
		capture.SizeBytes, capture.CapturedAt, capture.IsFlagged,
	).Scan(&capture.CreatedAt)

	if err != nil {
		return monitoring.ScreenCapture{}, fmt.Errorf("failed to create screen capture: %w", err)
	}

	return capture, nil
}

// GetByID implements monitoring.CaptureRepository.
func (c *captureRepository) GetByID(ctx context.Context, id string, companyID string) (monitoring.ScreenCapture, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT sc.id, sc.company_id, sc.employee_id, sc.image_path, sc.size_bytes,
			   sc.captured_at, sc.is_flagged, sc.created_at, e.full_name
		FROM screen_captures sc
		JOIN employees e ON e.id = sc.employee_id
		WHERE sc.id = $1 AND sc.company_id = $2
	`

	var capture monitoring.ScreenCapture
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&capture.ID, &capture.CompanyID, &capture.EmployeeID, &capture.ImagePath, &capture.SizeBytes,
		&capture.CapturedAt, &capture.IsFlagged, &capture.CreatedAt, &capture.EmployeeName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return monitoring.ScreenCapture{}, monitoring.ErrCaptureNotFound
		}
		return monitoring.ScreenCapture{}, fmt.Errorf("failed to get screen capture: %w", err)
	}

	return capture, nil
}

// List implements monitoring.CaptureRepository.
func (c *captureRepository) List(ctx context.Context, filter monitoring.CaptureFilter, companyID string) ([]monitoring.ScreenCapture, int64, error) {
	q := GetQuerier(ctx, c.db)

	where := "WHERE sc.company_id = $1"
	args := []interface{}{companyID}

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		where += fmt.Sprintf(" AND sc.employee_id = $%d", len(args))
	}
	if filter.Flagged != nil {
		args = append(args, *filter.Flagged)
		where += fmt.Sprintf(" AND sc.is_flagged = $%d", len(args))
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM screen_captures sc " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count screen captures: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	query := fmt.Sprintf(`
		SELECT sc.id, sc.company_id, sc.employee_id, sc.image_path, sc.size_bytes,
			   sc.captured_at, sc.is_flagged, sc.created_at, e.full_name
		FROM screen_captures sc
		JOIN employees e ON e.id = sc.employee_id
		%s
		ORDER BY sc.captured_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list screen captures: %w", err)
	}
	defer rows.Close()

	var result []monitoring.ScreenCapture
	for rows.Next() {
		var capture monitoring.ScreenCapture
		if err := rows.Scan(
			&capture.ID, &capture.CompanyID, &capture.EmployeeID, &capture.ImagePath, &capture.SizeBytes,
			&capture.CapturedAt, &capture.IsFlagged, &capture.CreatedAt, &capture.EmployeeName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan screen capture row: %w", err)
		}
		result = append(result, capture)
	}

	return result, total, rows.Err()
}

// SetFlag implements monitoring.CaptureRepository.
func (c *captureRepository) SetFlag(ctx context.Context, id string, companyID string, flagged bool) error {
	q := GetQuerier(ctx, c.db)

	tag, err := q.Exec(ctx, `
		UPDATE screen_captures SET is_flagged = $1 WHERE id = $2 AND company_id = $3
	`, flagged, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to flag screen capture: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return monitoring.ErrCaptureNotFound
	}

	return nil
}

// Delete implements monitoring.CaptureRepository.
func (c *captureRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, c.db)

	tag, err := q.Exec(ctx, `
		DELETE FROM screen_captures WHERE id = $1 AND company_id = $2
	`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete screen capture: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return monitoring.ErrCaptureNotFound
	}

	return nil
}

// Stats implements monitoring.CaptureRepository.
func (c *captureRepository) Stats(ctx context.Context, companyID string, startOfDay time.Time) (monitoring.CaptureStatsResponse, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE captured_at >= $2),
			COUNT(*) FILTER (WHERE is_flagged),
			COUNT(*)
		FROM screen_captures
		WHERE company_id = $1
	`

	var stats monitoring.CaptureStatsResponse
	if err := q.QueryRow(ctx, query, companyID, startOfDay).Scan(&stats.Today, &stats.Flagged, &stats.Total); err != nil {
		return monitoring.CaptureStatsResponse{}, fmt.Errorf("failed to get capture stats: %w", err)
	}

	return stats, nil
}

// ListExpired implements monitoring.CaptureRepository.
func (c *captureRepository) ListExpired(ctx context.Context, now time.Time) ([]monitoring.ScreenCapture, error) {
	q := GetQuerier(ctx, c.db)

	// A capture expires retention_days after it was taken, per its
	// company's schedule. Companies without a schedule keep everything.
	query := `
		SELECT sc.id, sc.company_id, sc.employee_id, sc.image_path, sc.size_bytes,
			   sc.captured_at, sc.is_flagged, sc.created_at
		FROM screen_captures sc
		JOIN capture_schedules cs ON cs.company_id = sc.company_id
		WHERE sc.captured_at < $1 - (cs.retention_days * interval '1 day')
	`

	rows, err := q.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired captures: %w", err)
	}
	defer rows.Close()

	var result []monitoring.ScreenCapture
	for rows.Next() {
		var capture monitoring.ScreenCapture
		if err := rows.Scan(
			&capture.ID, &capture.CompanyID, &capture.EmployeeID, &capture.ImagePath, &capture.SizeBytes,
			&capture.CapturedAt, &capture.IsFlagged, &capture.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expired capture row: %w", err)
		}
		result = append(result, capture)
	}

	return result, rows.Err()
}
