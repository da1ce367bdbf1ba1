package core

import (
	"github.com/comalice/fsmx/internal/primitives"
)

// BasicKind is the entity kind served by BaseState and BaseTransition. An empty
// kind means the same.
const BasicKind = "basic"

// StateFactory creates the State for a specification entry. It returns (nil, nil)
// when it does not handle the entry so the next factory can try.
type StateFactory interface {
	CreateState(spec primitives.StateSpec, init primitives.Initializer) (State, error)
}

// TransitionFactory creates the Transition for a specification entry registered
// under name. It returns (nil, nil) when it does not handle the entry.
type TransitionFactory interface {
	CreateTransition(name string, spec primitives.TransitionSpec, init primitives.Initializer) (Transition, error)
}

// StateFactoryFunc adapts a function to StateFactory.
type StateFactoryFunc func(spec primitives.StateSpec, init primitives.Initializer) (State, error)

func (f StateFactoryFunc) CreateState(spec primitives.StateSpec, init primitives.Initializer) (State, error) {
	return f(spec, init)
}

// TransitionFactoryFunc adapts a function to TransitionFactory.
type TransitionFactoryFunc func(name string, spec primitives.TransitionSpec, init primitives.Initializer) (Transition, error)

func (f TransitionFactoryFunc) CreateTransition(name string, spec primitives.TransitionSpec, init primitives.Initializer) (Transition, error) {
	return f(name, spec, init)
}

type basicFactory struct{}

func isBasic(kind string) bool { return kind == "" || kind == BasicKind }

func (basicFactory) CreateState(spec primitives.StateSpec, _ primitives.Initializer) (State, error) {
	if !isBasic(spec.Kind) {
		return nil, nil
	}
	return NewBaseState(spec), nil
}

func (basicFactory) CreateTransition(name string, spec primitives.TransitionSpec, _ primitives.Initializer) (Transition, error) {
	if !isBasic(spec.Kind) {
		return nil, nil
	}
	return NewBaseTransition(name, spec), nil
}

// createState asks each factory in order; the first non-nil State wins.
func createState(factories []StateFactory, spec primitives.StateSpec, init primitives.Initializer) (State, error) {
	for _, f := range factories {
		s, err := f.CreateState(spec, init)
		if err != nil {
			return nil, primitives.NewSpecError(primitives.KindUnresolvedEntity, spec.Name, err)
		}
		if s == nil {
			continue
		}
		if s.Name() != spec.Name {
			return nil, primitives.SpecErrorf(primitives.KindUnresolvedEntity, spec.Name, "factory returned state %q", s.Name())
		}
		return s, nil
	}
	return nil, primitives.SpecErrorf(primitives.KindUnresolvedEntity, spec.Name, "no factory creates state kind %q", spec.Kind)
}

func createTransition(factories []TransitionFactory, name string, spec primitives.TransitionSpec, init primitives.Initializer) (Transition, error) {
	for _, f := range factories {
		t, err := f.CreateTransition(name, spec, init)
		if err != nil {
			return nil, primitives.NewSpecError(primitives.KindUnresolvedEntity, name, err)
		}
		if t == nil {
			continue
		}
		if t.Name() != name {
			return nil, primitives.SpecErrorf(primitives.KindUnresolvedEntity, name, "factory returned transition %q", t.Name())
		}
		return t, nil
	}
	return nil, primitives.SpecErrorf(primitives.KindUnresolvedEntity, name, "no factory creates transition kind %q", spec.Kind)
}
