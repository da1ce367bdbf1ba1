package core

import (
	"errors"
	"fmt"

	"github.com/comalice/fsmx/internal/primitives"
)

var (
	// ErrInvalidEvent is matched by every *InvalidEventError.
	ErrInvalidEvent       = errors.New("invalid event")
	ErrNotInitialized     = errors.New("machine is not initialized")
	ErrAlreadyInitialized = errors.New("machine is already initialized")
	ErrClosed             = errors.New("machine is closed")
)

// InvalidEventError reports an event with no eligible transition from the current
// state. The machine's state is unchanged and the caller may retry another event.
type InvalidEventError struct {
	MachineID string
	State     string
	Event     string
	Type      primitives.EventType
	Reason    string
}

func (e *InvalidEventError) Error() string {
	event := e.Event
	if event == "" {
		event = fmt.Sprintf("#%d", e.Type)
	}
	msg := fmt.Sprintf("invalid event %q in state %q", event, e.State)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *InvalidEventError) Is(target error) bool { return target == ErrInvalidEvent }

// IsInvalidEvent reports whether err is an invalid-event error.
func IsInvalidEvent(err error) bool {
	var e *InvalidEventError
	return errors.As(err, &e)
}
