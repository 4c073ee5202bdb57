package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/hrsuite/presence-monitor-go/internal/domain/attendance"
	"github.com/hrsuite/presence-monitor-go/internal/domain/monitoring"
)

// Client talks to the presence-monitor backend with a bearer token. It
// satisfies the agent's fetcher and uploader interfaces.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// envelope mirrors the backend's response shape.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		if env.Message != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, env.Message, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

// CurrentStatus returns today's attendance for the token's user.
func (c *Client) CurrentStatus(ctx context.Context) (attendance.StatusResponse, error) {
	var status attendance.StatusResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/attendances/current-status", nil, "", &status)
	return status, err
}

// CheckIn opens today's attendance session.
func (c *Client) CheckIn(ctx context.Context) (attendance.StatusResponse, error) {
	var status attendance.StatusResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/attendances/check-in", nil, "", &status)
	return status, err
}

// CheckOut closes today's attendance session.
func (c *Client) CheckOut(ctx context.Context) (attendance.StatusResponse, error) {
	var status attendance.StatusResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/attendances/check-out", nil, "", &status)
	return status, err
}

// GetCaptureSchedule returns the company's capture schedule.
func (c *Client) GetCaptureSchedule(ctx context.Context) (monitoring.ScheduleResponse, error) {
	var schedule monitoring.ScheduleResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/monitoring/schedule/current", nil, "", &schedule)
	return schedule, err
}

// UploadCapture sends an encoded frame as multipart form data.
func (c *Client) UploadCapture(ctx context.Context, data []byte, filename string) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("failed to write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return c.do(ctx, http.MethodPost, "/api/v1/monitoring/captures", &buf, writer.FormDataContentType(), nil)
}
