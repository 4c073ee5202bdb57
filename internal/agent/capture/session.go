package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hrsuite/presence-monitor-go/internal/domain/monitoring"
)

// Uploader ships an encoded frame to the backend.
type Uploader interface {
	UploadCapture(ctx context.Context, data []byte, filename string) error
}

// ErrSessionActive is returned when Start is called on a session that
// is already requesting or capturing.
var ErrSessionActive = errors.New("capture session already active")

type SessionState int

const (
	SessionIdle SessionState = iota
	SessionRequesting
	SessionActive
	SessionEnded
)

func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionRequesting:
		return "requesting"
	case SessionActive:
		return "active"
	case SessionEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session owns one run of the capture pipeline: acquire the screen,
// plan random instants for the rest of the work window, and upload a
// frame at each one. Cancel releases everything and is idempotent.
type Session struct {
	clock    Clock
	device   Device
	uploader Uploader
	planner  *Planner
	logger   *slog.Logger

	mu      sync.Mutex
	state   SessionState
	stream  Stream
	cancels []func()
	ctx     context.Context
}

func NewSession(clock Clock, device Device, uploader Uploader, planner *Planner, logger *slog.Logger) *Session {
	return &Session{
		clock:    clock,
		device:   device,
		uploader: uploader,
		planner:  planner,
		logger:   logger,
		state:    SessionIdle,
	}
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start acquires the screen and schedules the remaining captures for
// today. It returns ErrSessionActive if the session is already running,
// and the device error if access is refused. A schedule with a closed
// or malformed window leaves the session ended without error.
func (s *Session) Start(ctx context.Context, schedule monitoring.ScheduleResponse) error {
	s.mu.Lock()
	if s.state == SessionRequesting || s.state == SessionActive {
		s.mu.Unlock()
		return ErrSessionActive
	}
	s.state = SessionRequesting
	s.ctx = ctx
	s.mu.Unlock()

	stream, err := s.device.RequestAccess(ctx)
	if err != nil {
		s.mu.Lock()
		s.state = SessionEnded
		s.mu.Unlock()
		return fmt.Errorf("failed to acquire screen: %w", err)
	}

	s.mu.Lock()
	if s.state != SessionRequesting {
		// Cancelled while the access prompt was pending.
		s.mu.Unlock()
		stream.Stop()
		return nil
	}
	s.stream = stream
	s.state = SessionActive
	s.mu.Unlock()

	stream.OnEnded(func() {
		s.logger.Warn("Screen source ended externally, stopping capture session")
		s.Cancel()
	})

	now := s.clock.Now()
	instants, err := s.planner.Plan(schedule, now)
	if err != nil {
		s.logger.Error("Failed to plan capture window", "error", err)
		s.Cancel()
		return nil
	}
	if len(instants) == 0 {
		s.logger.Info("Capture window already closed, nothing to schedule")
		s.Cancel()
		return nil
	}

	s.mu.Lock()
	if s.state != SessionActive {
		s.mu.Unlock()
		return nil
	}
	for _, at := range instants {
		cancel := s.clock.Schedule(at.Sub(now), s.captureOnce)
		s.cancels = append(s.cancels, cancel)
	}
	s.mu.Unlock()

	s.logger.Info("Capture session started",
		"captures_planned", len(instants),
		"window_end", schedule.WorkEnd,
	)
	return nil
}

// Cancel stops the session: pending captures are dropped and the screen
// source is released. Safe to call multiple times and from callbacks.
func (s *Session) Cancel() {
	s.mu.Lock()
	if s.state == SessionEnded || s.state == SessionIdle {
		s.state = SessionEnded
		s.mu.Unlock()
		return
	}
	s.state = SessionEnded
	cancels := s.cancels
	s.cancels = nil
	stream := s.stream
	s.stream = nil
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	if stream != nil {
		stream.Stop()
	}
}

// captureOnce runs at a planned instant. A session cancelled between
// scheduling and firing drops the capture silently.
func (s *Session) captureOnce() {
	s.mu.Lock()
	if s.state != SessionActive {
		s.mu.Unlock()
		return
	}
	stream := s.stream
	ctx := s.ctx
	s.mu.Unlock()

	img, err := stream.Grab()
	if err != nil {
		s.logger.Error("Failed to grab frame", "error", err)
		return
	}

	data, err := EncodeFrame(img)
	if err != nil {
		s.logger.Error("Failed to encode frame", "error", err)
		return
	}

	filename := fmt.Sprintf("capture-%d.jpg", s.clock.Now().UnixMilli())
	if err := s.uploader.UploadCapture(ctx, data, filename); err != nil {
		s.logger.Error("Failed to upload capture", "error", err)
		return
	}

	s.logger.Debug("Capture uploaded", "filename", filename, "bytes", len(data))
}
