package core

import (
	"github.com/comalice/fsmx/internal/primitives"
)

// State is a node of the machine. The engine calls OnAttach exactly once before any
// dispatch and the transit hooks only from Transit.
type State interface {
	Name() string
	IsInitial() bool
	IsFinal() bool

	// OnAttach receives the entity's resolved initializer.
	OnAttach(init primitives.Initializer) error
	// OnStateBecomesCurrent runs after the machine switched to this state.
	OnStateBecomesCurrent(evt primitives.Event, previous State)
	// OnStateIsNoLongerCurrent runs before the machine leaves this state.
	OnStateIsNoLongerCurrent(evt primitives.Event, next State)
	// OnInvalidTransition runs when evt matched no eligible transition.
	OnInvalidTransition(evt primitives.Event)
}

// Detacher is implemented by entities that want to know when their machine is discarded.
type Detacher interface {
	OnDetach()
}

// Requirer is implemented by entities that declare initializer keys of their own,
// in addition to those listed in the specification.
type Requirer interface {
	RequiredKeys() []string
}

// BaseState is the stock State. Custom states embed it and override the hooks they need.
type BaseState struct {
	name    string
	initial bool
	final   bool
	attrs   primitives.Attributes
}

// NewBaseState creates a BaseState from its specification entry. The engine hands
// factories entries whose Initial flag is already resolved.
func NewBaseState(spec primitives.StateSpec) *BaseState {
	return &BaseState{
		name:    spec.Name,
		initial: spec.Initial,
		final:   spec.Final,
	}
}

func (s *BaseState) Name() string    { return s.name }
func (s *BaseState) IsInitial() bool { return s.initial }
func (s *BaseState) IsFinal() bool   { return s.final }

// Attributes exposes the values loaded at attach time.
func (s *BaseState) Attributes() *primitives.Attributes { return &s.attrs }

func (s *BaseState) OnAttach(init primitives.Initializer) error {
	return s.attrs.Load(init)
}

func (s *BaseState) OnStateBecomesCurrent(primitives.Event, State)    {}
func (s *BaseState) OnStateIsNoLongerCurrent(primitives.Event, State) {}
func (s *BaseState) OnInvalidTransition(primitives.Event)             {}
