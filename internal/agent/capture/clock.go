package capture

import "time"

// Clock abstracts time and deferred execution so sessions can be driven
// by a fake clock in tests.
type Clock interface {
	Now() time.Time

	// Schedule runs fn after d and returns a cancel function. Cancelling
	// after fn has started is a no-op.
	Schedule(d time.Duration, fn func()) (cancel func())
}

type realClock struct{}

// NewRealClock returns a Clock backed by the time package.
func NewRealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
