package primitives

import "strings"

// DefaultTrigger is the reserved trigger name of the wildcard transition.
const DefaultTrigger = "default"

// EventType is the code of an event kind inside its EventSet.
type EventType int

// EventSet is the closed, ordered set of event kinds a machine accepts.
// It is immutable once built.
type EventSet struct {
	names []string
	index map[string]EventType
}

// NewEventSet builds an EventSet. Codes follow the order of names, starting at zero.
func NewEventSet(names ...string) (*EventSet, error) {
	s := &EventSet{
		names: make([]string, 0, len(names)),
		index: make(map[string]EventType, len(names)),
	}
	for _, n := range names {
		switch {
		case strings.TrimSpace(n) == "":
			return nil, SpecErrorf(KindInvalidEvents, n, "event name cannot be empty")
		case n == DefaultTrigger:
			return nil, SpecErrorf(KindInvalidEvents, n, "event name is reserved for default transitions")
		}
		if _, dup := s.index[n]; dup {
			return nil, SpecErrorf(KindInvalidEvents, n, "event declared twice")
		}
		s.index[n] = EventType(len(s.names))
		s.names = append(s.names, n)
	}
	return s, nil
}

// Lookup returns the code of name.
func (s *EventSet) Lookup(name string) (EventType, bool) {
	t, ok := s.index[name]
	return t, ok
}

// Contains reports whether t belongs to the set.
func (s *EventSet) Contains(t EventType) bool {
	return t >= 0 && int(t) < len(s.names)
}

// Name returns the name of t, or "" when t is outside the set.
func (s *EventSet) Name(t EventType) string {
	if !s.Contains(t) {
		return ""
	}
	return s.names[t]
}

// Names returns a copy of the event names in code order.
func (s *EventSet) Names() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of event kinds.
func (s *EventSet) Len() int { return len(s.names) }

// Event is one occurrence of an event kind with an optional caller payload.
// Events are values and must not be mutated after construction.
type Event struct {
	Type    EventType
	Payload any
}

// NewEvent creates an Event.
func NewEvent(t EventType, payload any) Event {
	return Event{
		Type:    t,
		Payload: payload,
	}
}
