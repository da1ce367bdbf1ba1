package core

import (
	"sync"

	"github.com/comalice/fsmx/internal/primitives"
)

// SyncMachine serializes initialization, dispatch and Close of a Machine behind one
// mutex. Lifecycle hooks and observers run with the lock held. CurrentState does not
// take the lock and returns the state before or after an in-flight transition.
type SyncMachine struct {
	mu sync.Mutex
	m  *Machine
}

// NewSyncMachine wraps m. m must not be used directly afterwards.
func NewSyncMachine(m *Machine) *SyncMachine {
	return &SyncMachine{m: m}
}

// BuildSync is Build for the concurrent variant.
func BuildSync(spec primitives.Specification, opts ...Option) (*SyncMachine, error) {
	m, err := Build(spec, opts...)
	if err != nil {
		return nil, err
	}
	return NewSyncMachine(m), nil
}

// NewSync is New for the concurrent variant.
func NewSync(spec primitives.Specification, inits primitives.Initializers, opts ...Option) (*SyncMachine, error) {
	s, err := BuildSync(spec, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.CompleteInitialization(inits); err != nil {
		return nil, err
	}
	return s, nil
}

// CompleteInitialization attaches every entity under the lock. See Machine.CompleteInitialization.
func (s *SyncMachine) CompleteInitialization(inits primitives.Initializers) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.CompleteInitialization(inits)
}

// Transit dispatches evt under the lock.
func (s *SyncMachine) Transit(evt primitives.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Transit(evt)
}

// TransitName dispatches the declared event name with payload.
func (s *SyncMachine) TransitName(name string, payload any) error {
	evt, err := s.Event(name, payload)
	if err != nil {
		return err
	}
	return s.Transit(evt)
}

// Event builds an Event from a declared event name. The event set is immutable.
func (s *SyncMachine) Event(name string, payload any) (primitives.Event, error) {
	t, ok := s.m.events.Lookup(name)
	if !ok {
		return primitives.Event{}, &InvalidEventError{
			MachineID: s.m.id,
			State:     s.CurrentState().Name(),
			Event:     name,
			Type:      -1,
			Reason:    "event is not declared",
		}
	}
	return primitives.NewEvent(t, payload), nil
}

// CurrentState returns the current state without taking the lock.
func (s *SyncMachine) CurrentState() State { return s.m.CurrentState() }

// Events returns the machine's event set.
func (s *SyncMachine) Events() *primitives.EventSet { return s.m.Events() }

// ID returns the machine instance ID.
func (s *SyncMachine) ID() string { return s.m.ID() }

// SpecID returns the ID of the specification the machine was built from.
func (s *SyncMachine) SpecID() string { return s.m.SpecID() }

// Initialized reports whether CompleteInitialization succeeded.
func (s *SyncMachine) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Initialized()
}

// Close detaches every entity. Later calls to Transit fail with ErrClosed.
func (s *SyncMachine) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m.Close()
}
