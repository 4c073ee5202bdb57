package capture

import (
	"context"
	"errors"
	"image"
)

var (
	// ErrPermissionDenied is returned when the user or platform refuses
	// screen access.
	ErrPermissionDenied = errors.New("screen capture permission denied")

	// ErrNoDisplay is returned when no capturable display is attached.
	ErrNoDisplay = errors.New("no active display found")
)

// Stream is an acquired screen source. Stop releases it; a stream must
// not be used after Stop.
type Stream interface {
	// Grab takes a single frame of the primary display.
	Grab() (image.Image, error)

	// Stop releases the underlying source. Safe to call more than once.
	Stop()

	// OnEnded registers a callback invoked when the source terminates
	// outside the session's control, e.g. the user revokes sharing.
	OnEnded(fn func())
}

// Device grants access to the screen. Acquisition may block on a user
// prompt, so it takes a context.
type Device interface {
	RequestAccess(ctx context.Context) (Stream, error)
}
