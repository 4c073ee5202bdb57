package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hrsuite/presence-monitor-go/internal/domain/attendance"
	"github.com/hrsuite/presence-monitor-go/internal/domain/monitoring"
	"github.com/hrsuite/presence-monitor-go/internal/pkg/jwt"
	"github.com/hrsuite/presence-monitor-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routerTestSecret = "test-secret-key-for-jwt"

type stubAttendanceService struct{}

func (stubAttendanceService) CheckIn(context.Context) (attendance.StatusResponse, error) {
	return attendance.StatusResponse{IsClockedIn: true}, nil
}

func (stubAttendanceService) CheckOut(context.Context) (attendance.StatusResponse, error) {
	return attendance.StatusResponse{}, nil
}

func (stubAttendanceService) CurrentStatus(context.Context) (attendance.StatusResponse, error) {
	return attendance.StatusResponse{IsClockedIn: true}, nil
}

func (stubAttendanceService) ListAttendance(context.Context, attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return attendance.ListAttendanceResponse{Page: 1, Limit: 20}, nil
}

func (stubAttendanceService) GetMyAttendance(context.Context, attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return attendance.ListAttendanceResponse{Page: 1, Limit: 20}, nil
}

type stubMonitoringService struct{}

func (stubMonitoringService) GetCurrentSchedule(context.Context) (monitoring.ScheduleResponse, error) {
	return monitoring.ScheduleResponse{IsEnabled: true, WorkStart: "09:00", WorkEnd: "17:00", CapturesPerDay: 4, RetentionDays: 30}, nil
}

func (stubMonitoringService) UpdateSchedule(context.Context, monitoring.UpdateScheduleRequest) (monitoring.ScheduleResponse, error) {
	return monitoring.ScheduleResponse{}, nil
}

func (stubMonitoringService) UploadCapture(context.Context, monitoring.UploadCaptureRequest) (monitoring.CaptureResponse, error) {
	return monitoring.CaptureResponse{}, nil
}

func (stubMonitoringService) ListCaptures(context.Context, monitoring.CaptureFilter) (monitoring.ListCapturesResponse, error) {
	return monitoring.ListCapturesResponse{Page: 1, Limit: 50}, nil
}

func (stubMonitoringService) FlagCapture(context.Context, monitoring.FlagCaptureRequest) (monitoring.CaptureResponse, error) {
	return monitoring.CaptureResponse{}, nil
}

func (stubMonitoringService) DeleteCapture(context.Context, string) error { return nil }

func (stubMonitoringService) GetStats(context.Context) (monitoring.CaptureStatsResponse, error) {
	return monitoring.CaptureStatsResponse{}, nil
}

func (stubMonitoringService) PurgeExpired(context.Context) (int, error) { return 0, nil }

func newTestRouter(t *testing.T) (http.Handler, jwt.Service) {
	t.Helper()
	jwtService := jwt.NewJWTService(routerTestSecret, "1h")
	router := NewRouter(
		jwtService,
		NewAttendanceHandler(stubAttendanceService{}),
		NewMonitoringHandler(stubMonitoringService{}, sse.NewHub()),
		[]string{"*"},
	)
	return router, jwtService
}

func bearerToken(t *testing.T, jwtService jwt.Service, role string) string {
	t.Helper()
	token, _, err := jwtService.GenerateAccessToken("user-1", "emp-1", "comp-1", role)
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(router http.Handler, method, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouterRejectsMissingToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/attendances/current-status", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterRejectsGarbageToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/attendances/current-status", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterAllowsEmployeeRoutes(t *testing.T) {
	router, jwtService := newTestRouter(t)
	auth := bearerToken(t, jwtService, "employee")

	rec := doRequest(router, http.MethodGet, "/api/v1/attendances/current-status", auth)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)

	rec = doRequest(router, http.MethodGet, "/api/v1/monitoring/schedule/current", auth)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterBlocksEmployeeFromAdminRoutes(t *testing.T) {
	router, jwtService := newTestRouter(t)
	auth := bearerToken(t, jwtService, "employee")

	adminPaths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/attendances/"},
		{http.MethodGet, "/api/v1/monitoring/captures/"},
		{http.MethodGet, "/api/v1/monitoring/captures/stats"},
		{http.MethodDelete, "/api/v1/monitoring/captures/some-id"},
	}

	for _, p := range adminPaths {
		rec := doRequest(router, p.method, p.path, auth)
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", p.method, p.path)
	}
}

func TestRouterAllowsAdminRoutes(t *testing.T) {
	router, jwtService := newTestRouter(t)
	auth := bearerToken(t, jwtService, "admin")

	rec := doRequest(router, http.MethodGet, "/api/v1/monitoring/captures/stats", auth)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/v1/attendances/", auth)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterHeartbeat(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
