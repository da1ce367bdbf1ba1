package core

import (
	"github.com/comalice/fsmx/internal/primitives"
)

// Transition is an edge of the machine. Target may be a "${...}" expression; the
// engine resolves it at initialization. Guard is an expression source or "".
type Transition interface {
	Name() string
	Trigger() string
	Target() string
	Guard() string
	OnAttach(init primitives.Initializer) error
}

// BaseTransition is the stock Transition.
type BaseTransition struct {
	name    string
	trigger string
	target  string
	guard   string
	attrs   primitives.Attributes
}

// NewBaseTransition creates a BaseTransition from its specification entry.
// name is the entity name the transition is registered under.
func NewBaseTransition(name string, spec primitives.TransitionSpec) *BaseTransition {
	return &BaseTransition{
		name:    name,
		trigger: spec.On,
		target:  spec.Target,
		guard:   spec.Guard,
	}
}

func (t *BaseTransition) Name() string    { return t.name }
func (t *BaseTransition) Trigger() string { return t.trigger }
func (t *BaseTransition) Target() string  { return t.target }
func (t *BaseTransition) Guard() string   { return t.guard }

// Attributes exposes the values loaded at attach time.
func (t *BaseTransition) Attributes() *primitives.Attributes { return &t.attrs }

func (t *BaseTransition) OnAttach(init primitives.Initializer) error {
	return t.attrs.Load(init)
}
