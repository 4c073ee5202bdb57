package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hrsuite/presence-monitor-go/internal/domain/monitoring"
	"github.com/hrsuite/presence-monitor-go/internal/pkg/database"
	"github.com/hrsuite/presence-monitor-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

// requireDB connects once and skips the test when no database is
// reachable, so the suite runs without infrastructure.
func requireDB(t *testing.T) *database.DB {
	t.Helper()
	if testDB != nil {
		return testDB
	}

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Skipf("test database unreachable: %v", err)
	}
	testDB = db
	return testDB
}

func truncateTables(t *testing.T, ctx context.Context) {
	for _, table := range []string{"screen_captures", "capture_schedules", "attendances", "employees", "companies"} {
		_, err := testDB.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
}

func createCompany(t *testing.T, ctx context.Context) string {
	id := uuid.NewString()
	_, err := testDB.Exec(ctx, `
		INSERT INTO companies (id, name) VALUES ($1, 'Test Company')
	`, id)
	require.NoError(t, err)
	return id
}

func createEmployee(t *testing.T, ctx context.Context, companyID string) string {
	id := uuid.NewString()
	_, err := testDB.Exec(ctx, `
		INSERT INTO employees (id, company_id, full_name, role)
		VALUES ($1, $2, 'Test Employee', 'employee')
	`, id, companyID)
	require.NoError(t, err)
	return id
}

func TestScheduleUpsertRoundTrip(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := postgresql.NewScheduleRepository(db)
	companyID := createCompany(t, ctx)

	_, err := repo.GetByCompanyID(ctx, companyID)
	assert.ErrorIs(t, err, monitoring.ErrScheduleNotFound)

	saved, err := repo.Upsert(ctx, monitoring.CaptureSchedule{
		ID:             uuid.NewString(),
		CompanyID:      companyID,
		IsEnabled:      true,
		WorkStart:      "09:00",
		WorkEnd:        "17:00",
		CapturesPerDay: 4,
		RetentionDays:  30,
	})
	require.NoError(t, err)

	// Upserting again replaces, not duplicates.
	updated, err := repo.Upsert(ctx, monitoring.CaptureSchedule{
		ID:             uuid.NewString(),
		CompanyID:      companyID,
		IsEnabled:      false,
		WorkStart:      "08:00",
		WorkEnd:        "16:00",
		CapturesPerDay: 2,
		RetentionDays:  14,
	})
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)

	got, err := repo.GetByCompanyID(ctx, companyID)
	require.NoError(t, err)
	assert.False(t, got.IsEnabled)
	assert.Equal(t, "08:00", got.WorkStart)
	assert.Equal(t, 2, got.CapturesPerDay)
}

func TestCaptureCompanyScoping(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := postgresql.NewCaptureRepository(db)
	companyA := createCompany(t, ctx)
	companyB := createCompany(t, ctx)
	employeeA := createEmployee(t, ctx, companyA)

	created, err := repo.Create(ctx, monitoring.ScreenCapture{
		ID:         uuid.NewString(),
		CompanyID:  companyA,
		EmployeeID: employeeA,
		ImagePath:  "captures/a.jpg",
		SizeBytes:  123,
		CapturedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, created.ID, companyB)
	assert.ErrorIs(t, err, monitoring.ErrCaptureNotFound)

	got, err := repo.GetByID(ctx, created.ID, companyA)
	require.NoError(t, err)
	require.NotNil(t, got.EmployeeName)
	assert.Equal(t, "Test Employee", *got.EmployeeName)

	err = repo.SetFlag(ctx, created.ID, companyB, true)
	assert.ErrorIs(t, err, monitoring.ErrCaptureNotFound)

	require.NoError(t, repo.SetFlag(ctx, created.ID, companyA, true))
	got, err = repo.GetByID(ctx, created.ID, companyA)
	require.NoError(t, err)
	assert.True(t, got.IsFlagged)

	err = repo.Delete(ctx, created.ID, companyB)
	assert.ErrorIs(t, err, monitoring.ErrCaptureNotFound)
	require.NoError(t, repo.Delete(ctx, created.ID, companyA))
}

func TestCaptureStatsAndExpiry(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	scheduleRepo := postgresql.NewScheduleRepository(db)
	captureRepo := postgresql.NewCaptureRepository(db)
	companyID := createCompany(t, ctx)
	employeeID := createEmployee(t, ctx, companyID)

	_, err := scheduleRepo.Upsert(ctx, monitoring.CaptureSchedule{
		ID:             uuid.NewString(),
		CompanyID:      companyID,
		IsEnabled:      true,
		WorkStart:      "09:00",
		WorkEnd:        "17:00",
		CapturesPerDay: 4,
		RetentionDays:  7,
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	fresh := monitoring.ScreenCapture{
		ID: uuid.NewString(), CompanyID: companyID, EmployeeID: employeeID,
		ImagePath: "captures/fresh.jpg", CapturedAt: now, IsFlagged: true,
	}
	stale := monitoring.ScreenCapture{
		ID: uuid.NewString(), CompanyID: companyID, EmployeeID: employeeID,
		ImagePath: "captures/stale.jpg", CapturedAt: now.AddDate(0, 0, -10),
	}
	_, err = captureRepo.Create(ctx, fresh)
	require.NoError(t, err)
	_, err = captureRepo.Create(ctx, stale)
	require.NoError(t, err)

	stats, err := captureRepo.Stats(ctx, companyID, now.Truncate(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Today)
	assert.Equal(t, int64(1), stats.Flagged)

	expired, err := captureRepo.ListExpired(ctx, now)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, stale.ID, expired[0].ID)
}
