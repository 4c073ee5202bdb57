package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hrsuite/presence-monitor-go/internal/domain/attendance"
	"github.com/hrsuite/presence-monitor-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceCreateAndGet(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := postgresql.NewAttendanceRepository(db)
	companyID := createCompany(t, ctx)
	employeeID := createEmployee(t, ctx, companyID)

	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	missing, err := repo.GetByEmployeeAndDate(ctx, employeeID, today, companyID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	created, err := repo.Create(ctx, attendance.Attendance{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Date:       today,
		CheckIn:    &now,
		Status:     "open",
	})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByEmployeeAndDate(ctx, employeeID, today, companyID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "open", got.Status)
	require.NotNil(t, got.CheckIn)
	assert.Nil(t, got.CheckOut)

	// Other companies never see the record.
	other, err := repo.GetByEmployeeAndDate(ctx, employeeID, today, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestAttendanceUpdateClosesSession(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := postgresql.NewAttendanceRepository(db)
	companyID := createCompany(t, ctx)
	employeeID := createEmployee(t, ctx, companyID)

	checkIn := time.Now().UTC().Add(-8 * time.Hour)
	today := time.Now().UTC().Truncate(24 * time.Hour)

	created, err := repo.Create(ctx, attendance.Attendance{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Date:       today,
		CheckIn:    &checkIn,
		Status:     "open",
	})
	require.NoError(t, err)

	checkOut := time.Now().UTC()
	workSeconds := int(checkOut.Sub(checkIn) / time.Second)
	created.CheckOut = &checkOut
	created.WorkSeconds = &workSeconds
	created.Status = "closed"

	require.NoError(t, repo.Update(ctx, created))

	got, err := repo.GetByEmployeeAndDate(ctx, employeeID, today, companyID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "closed", got.Status)
	require.NotNil(t, got.WorkSeconds)
	assert.Equal(t, workSeconds, *got.WorkSeconds)
}

func TestAttendanceUpdateMissingRecord(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := postgresql.NewAttendanceRepository(db)
	companyID := createCompany(t, ctx)
	employeeID := createEmployee(t, ctx, companyID)

	now := time.Now().UTC()
	err := repo.Update(ctx, attendance.Attendance{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Date:       now.Truncate(24 * time.Hour),
		CheckIn:    &now,
		Status:     "open",
	})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceListWithEmployeeName(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := postgresql.NewAttendanceRepository(db)
	companyID := createCompany(t, ctx)
	employeeID := createEmployee(t, ctx, companyID)

	now := time.Now().UTC()
	_, err := repo.Create(ctx, attendance.Attendance{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Date:       now.Truncate(24 * time.Hour),
		CheckIn:    &now,
		Status:     "open",
	})
	require.NoError(t, err)

	records, total, err := repo.List(ctx, attendance.AttendanceFilter{}, companyID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].EmployeeName)
	assert.Equal(t, "Test Employee", *records[0].EmployeeName)

	byEmployee, total, err := repo.ListByEmployee(ctx, employeeID, attendance.AttendanceFilter{Month: now.Format("2006-01")}, companyID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, byEmployee, 1)
}
