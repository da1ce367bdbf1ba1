package fsmx

import (
	"github.com/tiendc/go-deepcopy"

	"github.com/comalice/fsmx/internal/primitives"
)

// Builder provides a fluent API for assembling a Specification in code.
// States keep their declaration order.
type Builder struct {
	spec  primitives.Specification
	index map[string]int
}

// StateBuilder provides fluent methods for configuring individual states.
type StateBuilder struct {
	b   *Builder
	idx int
}

// TransitionOption configures one transition added with On or Default.
type TransitionOption func(*primitives.TransitionSpec)

// NewBuilder creates a new builder for the specification id.
func NewBuilder(id string) *Builder {
	return &Builder{
		spec:  primitives.Specification{ID: id},
		index: make(map[string]int),
	}
}

// Version sets the schema version the specification is written against.
func (b *Builder) Version(v string) *Builder {
	b.spec.Version = v
	return b
}

// Events appends event names to the closed event set.
func (b *Builder) Events(names ...string) *Builder {
	b.spec.Events = append(b.spec.Events, names...)
	return b
}

// State creates or retrieves a state by name.
func (b *Builder) State(name string) *StateBuilder {
	idx, ok := b.index[name]
	if !ok {
		idx = len(b.spec.States)
		b.spec.States = append(b.spec.States, primitives.StateSpec{Name: name})
		b.index[name] = idx
	}
	return &StateBuilder{b: b, idx: idx}
}

// Initializer sets the initializer of the entity named entity, replacing any earlier one.
func (b *Builder) Initializer(entity string, init Initializer) *Builder {
	if b.spec.Initializers == nil {
		b.spec.Initializers = make(primitives.Initializers)
	}
	b.spec.Initializers[entity] = init
	return b
}

// Spec returns a validated copy of the specification. The builder stays usable.
func (b *Builder) Spec() (Specification, error) {
	var out primitives.Specification
	if err := deepcopy.Copy(&out, &b.spec); err != nil {
		return out, err
	}
	if err := out.Validate(); err != nil {
		return out, err
	}
	return out, nil
}

// Build returns a machine that still needs CompleteInitialization.
func (b *Builder) Build(opts ...Option) (*Machine, error) {
	spec, err := b.Spec()
	if err != nil {
		return nil, err
	}
	return Build(spec, opts...)
}

// New builds and initializes a machine.
func (b *Builder) New(inits Initializers, opts ...Option) (*Machine, error) {
	spec, err := b.Spec()
	if err != nil {
		return nil, err
	}
	return New(spec, inits, opts...)
}

// NewSync builds and initializes a machine for concurrent producers.
func (b *Builder) NewSync(inits Initializers, opts ...Option) (*SyncMachine, error) {
	spec, err := b.Spec()
	if err != nil {
		return nil, err
	}
	return NewSync(spec, inits, opts...)
}

func (sb *StateBuilder) state() *primitives.StateSpec {
	return &sb.b.spec.States[sb.idx]
}

// Initial marks the state as the initial state.
func (sb *StateBuilder) Initial() *StateBuilder {
	sb.b.spec.Initial = sb.state().Name
	return sb
}

// Final marks the state as final. Final states may still have transitions.
func (sb *StateBuilder) Final() *StateBuilder {
	sb.state().Final = true
	return sb
}

// Kind selects a registered custom state kind.
func (sb *StateBuilder) Kind(kind string) *StateBuilder {
	sb.state().Kind = kind
	return sb
}

// Requires lists initializer keys the state must receive.
func (sb *StateBuilder) Requires(keys ...string) *StateBuilder {
	sb.state().Requires = append(sb.state().Requires, keys...)
	return sb
}

// On adds a transition to target triggered by event.
func (sb *StateBuilder) On(event, target string, opts ...TransitionOption) *StateBuilder {
	t := primitives.TransitionSpec{On: event, Target: target}
	for _, opt := range opts {
		opt(&t)
	}
	st := sb.state()
	st.Transitions = append(st.Transitions, t)
	return sb
}

// Default adds the wildcard transition taken when no event-specific transition applies.
func (sb *StateBuilder) Default(target string, opts ...TransitionOption) *StateBuilder {
	return sb.On(DefaultTrigger, target, opts...)
}

// State switches to another state, for chaining.
func (sb *StateBuilder) State(name string) *StateBuilder {
	return sb.b.State(name)
}

// Guard gates the transition on a boolean expression.
func Guard(src string) TransitionOption {
	return func(t *primitives.TransitionSpec) { t.Guard = src }
}

// Named sets the entity name the transition's initializer is keyed by.
func Named(name string) TransitionOption {
	return func(t *primitives.TransitionSpec) { t.Name = name }
}

// Requiring lists initializer keys the transition must receive.
func Requiring(keys ...string) TransitionOption {
	return func(t *primitives.TransitionSpec) { t.Requires = append(t.Requires, keys...) }
}

// OfKind selects a registered custom transition kind.
func OfKind(kind string) TransitionOption {
	return func(t *primitives.TransitionSpec) { t.Kind = kind }
}
