package core

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/comalice/fsmx/internal/primitives"
)

var (
	ErrKindExists   = errors.New("kind already registered")
	ErrReservedKind = errors.New("kind is empty or reserved")
)

// StateConstructor builds a custom State for a registered kind.
type StateConstructor func(spec primitives.StateSpec, init primitives.Initializer) (State, error)

// TransitionConstructor builds a custom Transition for a registered kind.
type TransitionConstructor func(name string, spec primitives.TransitionSpec, init primitives.Initializer) (Transition, error)

// Registry is an explicit kind → constructor table. Specifications select a custom
// entity type by naming its kind; nothing is discovered by inspecting program types.
// Registry implements both StateFactory and TransitionFactory.
type Registry struct {
	mu          sync.RWMutex
	states      map[string]StateConstructor
	transitions map[string]TransitionConstructor
}

// DefaultRegistry is consulted by every Machine unless WithRegistry replaces it.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		states:      make(map[string]StateConstructor),
		transitions: make(map[string]TransitionConstructor),
	}
}

// RegisterState binds kind to c.
func (r *Registry) RegisterState(kind string, c StateConstructor) error {
	if isBasic(kind) {
		return fmt.Errorf("state kind %q: %w", kind, ErrReservedKind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.states[kind]; ok {
		return fmt.Errorf("state kind %q: %w", kind, ErrKindExists)
	}
	r.states[kind] = c
	return nil
}

// RegisterTransition binds kind to c.
func (r *Registry) RegisterTransition(kind string, c TransitionConstructor) error {
	if isBasic(kind) {
		return fmt.Errorf("transition kind %q: %w", kind, ErrReservedKind)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transitions[kind]; ok {
		return fmt.Errorf("transition kind %q: %w", kind, ErrKindExists)
	}
	r.transitions[kind] = c
	return nil
}

// MustRegisterState is RegisterState that panics, for use in init functions.
func (r *Registry) MustRegisterState(kind string, c StateConstructor) {
	if err := r.RegisterState(kind, c); err != nil {
		panic(err)
	}
}

// MustRegisterTransition is RegisterTransition that panics, for use in init functions.
func (r *Registry) MustRegisterTransition(kind string, c TransitionConstructor) {
	if err := r.RegisterTransition(kind, c); err != nil {
		panic(err)
	}
}

// StateKinds returns the registered state kinds, sorted.
func (r *Registry) StateKinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.states))
	for k := range r.states {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func (r *Registry) CreateState(spec primitives.StateSpec, init primitives.Initializer) (State, error) {
	r.mu.RLock()
	c, ok := r.states[spec.Kind]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return c(spec, init)
}

func (r *Registry) CreateTransition(name string, spec primitives.TransitionSpec, init primitives.Initializer) (Transition, error) {
	r.mu.RLock()
	c, ok := r.transitions[spec.Kind]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return c(name, spec, init)
}
