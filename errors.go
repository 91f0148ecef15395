package interview_coach

import (
	"errors"
	"fmt"
)

// ErrSessionActive is returned when a relay registers a session id that is
// already live.
var ErrSessionActive = errors.New("session already active")

// ErrFrameTooLarge is reported for a client message over maxClientFrame
// bytes. The message is dropped and the session continues.
var ErrFrameTooLarge = fmt.Errorf("frame exceeds %d bytes", maxClientFrame)

// RelayError reports a failure while handling one client frame. It is sent
// back to the client as an error frame and the session continues.
type RelayError struct {
	// FrameType is the client frame type, empty if the frame could not be
	// decoded far enough to read it.
	FrameType string
	Err       error
}

func (e *RelayError) Error() string {
	if e.FrameType == "" {
		return fmt.Sprintf("relay: %v", e.Err)
	}
	return fmt.Sprintf("relay %s: %v", e.FrameType, e.Err)
}

func (e *RelayError) Unwrap() error {
	return e.Err
}
