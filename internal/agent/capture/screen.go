package capture

import (
	"context"
	"image"
	"sync"

	"github.com/kbinani/screenshot"
)

// ScreenDevice captures the primary physical display.
type ScreenDevice struct{}

func NewScreenDevice() *ScreenDevice {
	return &ScreenDevice{}
}

// RequestAccess implements Device.
func (d *ScreenDevice) RequestAccess(_ context.Context) (Stream, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return nil, ErrNoDisplay
	}

	// Probe once so a denied or broken capture surfaces here, not on the
	// first scheduled grab.
	if _, err := screenshot.CaptureDisplay(0); err != nil {
		return nil, ErrPermissionDenied
	}

	return &screenStream{}, nil
}

type screenStream struct {
	mu      sync.Mutex
	stopped bool
}

func (s *screenStream) Grab() (image.Image, error) {
	img, err := screenshot.CaptureDisplay(0)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (s *screenStream) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
}

// OnEnded implements Stream. A physical display cannot be revoked the
// way a shared browser surface can, so the callback never fires here.
func (s *screenStream) OnEnded(func()) {}
