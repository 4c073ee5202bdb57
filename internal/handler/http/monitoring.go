package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/hrsuite/presence-monitor-go/internal/domain/monitoring"
	"github.com/hrsuite/presence-monitor-go/internal/handler/http/response"
	"github.com/hrsuite/presence-monitor-go/internal/pkg/sse"
)

type MonitoringHandler interface {
	GetSchedule(w http.ResponseWriter, r *http.Request)
	UpdateSchedule(w http.ResponseWriter, r *http.Request)
	UploadCapture(w http.ResponseWriter, r *http.Request)
	ListCaptures(w http.ResponseWriter, r *http.Request)
	FlagCapture(w http.ResponseWriter, r *http.Request)
	DeleteCapture(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Events(w http.ResponseWriter, r *http.Request)
}

type monitoringHandlerImpl struct {
	monitoringService monitoring.MonitoringService
	eventHub          *sse.Hub
}

func NewMonitoringHandler(monitoringService monitoring.MonitoringService, eventHub *sse.Hub) MonitoringHandler {
	return &monitoringHandlerImpl{
		monitoringService: monitoringService,
		eventHub:          eventHub,
	}
}

// GetSchedule implements MonitoringHandler.
func (h *monitoringHandlerImpl) GetSchedule(w http.ResponseWriter, r *http.Request) {
	result, err := h.monitoringService.GetCurrentSchedule(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateSchedule implements MonitoringHandler.
func (h *monitoringHandlerImpl) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req monitoring.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode schedule update", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.monitoringService.UpdateSchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Capture schedule updated", result)
}

// UploadCapture implements MonitoringHandler.
func (h *monitoringHandlerImpl) UploadCapture(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Capture image is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	req := monitoring.UploadCaptureRequest{
		File:       file,
		FileHeader: fileHeader,
	}

	result, err := h.monitoringService.UploadCapture(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Capture uploaded", result)
}

// ListCaptures implements MonitoringHandler.
func (h *monitoringHandlerImpl) ListCaptures(w http.ResponseWriter, r *http.Request) {
	filter := monitoring.CaptureFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
	}
	if v := r.URL.Query().Get("flagged"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			filter.Flagged = &parsed
		}
	}
	if v := r.URL.Query().Get("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			filter.Page = parsed
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			filter.Limit = parsed
		}
	}

	result, err := h.monitoringService.ListCaptures(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// FlagCapture implements MonitoringHandler.
func (h *monitoringHandlerImpl) FlagCapture(w http.ResponseWriter, r *http.Request) {
	var req monitoring.FlagCaptureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.monitoringService.FlagCapture(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Capture flag updated", result)
}

// DeleteCapture implements MonitoringHandler.
func (h *monitoringHandlerImpl) DeleteCapture(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.monitoringService.DeleteCapture(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Capture deleted", nil)
}

// Stats implements MonitoringHandler.
func (h *monitoringHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	result, err := h.monitoringService.GetStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Events implements MonitoringHandler. It streams capture events for the
// caller's company over SSE until the client disconnects.
func (h *monitoringHandlerImpl) Events(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, cleanup := h.eventHub.Subscribe(companyID)
	defer cleanup()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("Failed to marshal SSE event", "error", err)
				continue
			}
			if _, err := w.Write([]byte("event: " + event.Event + "\ndata: " + string(payload) + "\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
