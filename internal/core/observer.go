package core

import "time"

// TransitionRecord describes one completed transition.
type TransitionRecord struct {
	MachineID  string
	SpecID     string
	From       string
	To         string
	Event      string
	Transition string
	Default    bool
	Duration   time.Duration
	At         time.Time
}

// RejectionRecord describes one event that matched no eligible transition.
type RejectionRecord struct {
	MachineID string
	SpecID    string
	State     string
	Event     string
	At        time.Time
}

// Observer is notified synchronously at the end of every Transit, after the lifecycle
// hooks ran. Observers must not call back into the machine.
type Observer interface {
	Transitioned(rec TransitionRecord)
	Rejected(rec RejectionRecord)
}
