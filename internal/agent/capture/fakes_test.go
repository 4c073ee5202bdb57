package capture

import (
	"context"
	"image"
	"sort"
	"sync"
	"time"
)

// fakeClock drives scheduled callbacks deterministically.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	at        time.Time
	fn        func()
	fired     bool
	cancelled bool
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Schedule(d time.Duration, fn func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{at: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		t.cancelled = true
	}
}

// Advance moves the clock forward, firing due callbacks in order.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var next *fakeTimer
		for _, t := range c.timers {
			if t.fired || t.cancelled || t.at.After(target) {
				continue
			}
			if next == nil || t.at.Before(next.at) {
				next = t
			}
		}
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		next.fired = true
		c.now = next.at
		fn := next.fn
		c.mu.Unlock()

		fn()
	}
}

func (c *fakeClock) pendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.fired && !t.cancelled {
			n++
		}
	}
	return n
}

// fakeStream records grabs and stops; onEnded can be triggered manually
// to simulate external revocation.
type fakeStream struct {
	mu      sync.Mutex
	grabs   int
	stopped bool
	grabErr error
	onEnded func()
}

func (s *fakeStream) Grab() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grabErr != nil {
		return nil, s.grabErr
	}
	s.grabs++
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

func (s *fakeStream) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

func (s *fakeStream) OnEnded(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEnded = fn
}

func (s *fakeStream) triggerEnded() {
	s.mu.Lock()
	fn := s.onEnded
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (s *fakeStream) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

type fakeDevice struct {
	stream *fakeStream
	err    error
}

func (d *fakeDevice) RequestAccess(_ context.Context) (Stream, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.stream, nil
}

type fakeUploader struct {
	mu        sync.Mutex
	filenames []string
	err       error
}

func (u *fakeUploader) UploadCapture(_ context.Context, _ []byte, filename string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.err != nil {
		return u.err
	}
	u.filenames = append(u.filenames, filename)
	return nil
}

func (u *fakeUploader) uploaded() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]string, len(u.filenames))
	copy(out, u.filenames)
	sort.Strings(out)
	return out
}
