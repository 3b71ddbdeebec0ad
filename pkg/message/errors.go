package message

import (
	"errors"
	"fmt"
)

// ErrInvalidSetting indicates a configuration value the bus cannot use.
var ErrInvalidSetting = errors.New("invalid setting")

// ListenerError wraps an error returned by a listener.
type ListenerError struct {
	EventType  string // Event being dispatched
	ListenerID string // Listener that failed
	Err        error  // Error returned by the listener
}

// Error implements the error interface.
func (e *ListenerError) Error() string {
	return fmt.Sprintf("event %q: listener %q: %v", e.EventType, e.ListenerID, e.Err)
}

// Unwrap returns the listener's error.
func (e *ListenerError) Unwrap() error {
	return e.Err
}
