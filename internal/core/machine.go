package core

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/comalice/fsmx/internal/expr"
	"github.com/comalice/fsmx/internal/primitives"
)

type phase int

const (
	phaseBuilt phase = iota
	phaseReady
	phaseFailed
	phaseClosed
)

type stateNode struct {
	spec     primitives.StateSpec
	state    State
	init     primitives.Initializer
	byEvent  map[primitives.EventType]*edge
	fallback *edge
}

type edge struct {
	name       string
	spec       primitives.TransitionSpec
	transition Transition
	init       primitives.Initializer
	guard      *expr.Program
	target     *stateNode
}

// Machine is a flat finite-state machine built from a Specification.
// It is not safe for concurrent use; see SyncMachine.
type Machine struct {
	id     string
	spec   primitives.Specification
	events *primitives.EventSet

	nodes   map[string]*stateNode
	order   []*stateNode
	edges   []*edge
	initial *stateNode
	current atomic.Pointer[stateNode]

	global   map[string]any
	phase    phase
	attached []any

	logger              *zap.SugaredLogger
	stateFactories      []StateFactory
	transitionFactories []TransitionFactory
	registry            *Registry
	observers           []Observer
}

// Build validates spec, creates every entity through the factory chain and returns
// a machine that still needs CompleteInitialization.
func Build(spec primitives.Specification, opts ...Option) (*Machine, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	events, err := spec.EventSet()
	if err != nil {
		return nil, err
	}
	initial, err := spec.InitialState()
	if err != nil {
		return nil, err
	}
	if spec.Initializers != nil {
		if err := spec.CheckInitializers(spec.Initializers); err != nil {
			return nil, err
		}
	}

	m := &Machine{
		id:       uuid.NewString(),
		spec:     spec,
		events:   events,
		nodes:    make(map[string]*stateNode, len(spec.States)),
		logger:   zap.NewNop().Sugar(),
		registry: DefaultRegistry,
	}
	for _, opt := range opts {
		opt(m)
	}

	stateChain := append(append([]StateFactory(nil), m.stateFactories...), m.registry, basicFactory{})
	transitionChain := append(append([]TransitionFactory(nil), m.transitionFactories...), m.registry, basicFactory{})

	for _, st := range spec.States {
		st.Initial = st.Name == initial
		s, err := createState(stateChain, st, spec.Initializers[st.Name])
		if err != nil {
			return nil, err
		}
		n := &stateNode{
			spec:    st,
			state:   s,
			byEvent: make(map[primitives.EventType]*edge, len(st.Transitions)),
		}
		m.nodes[st.Name] = n
		m.order = append(m.order, n)
	}

	for _, n := range m.order {
		for _, ts := range n.spec.Transitions {
			name := ts.EntityName(n.spec.Name)
			t, err := createTransition(transitionChain, name, ts, spec.Initializers[name])
			if err != nil {
				return nil, err
			}
			e := &edge{name: name, spec: ts, transition: t}
			if _, isExpr := expr.Template(t.Target()); !isExpr {
				if e.target = m.nodes[t.Target()]; e.target == nil {
					return nil, primitives.SpecErrorf(primitives.KindUnknownTarget, name, "target %q is not a declared state", t.Target())
				}
			}
			if ts.IsDefault() {
				n.fallback = e
			} else {
				et, _ := events.Lookup(ts.On)
				n.byEvent[et] = e
			}
			m.edges = append(m.edges, e)
		}
	}

	m.initial = m.nodes[initial]
	m.current.Store(m.initial)
	m.logger.Debugw("machine built",
		"machine", m.id,
		"spec", spec.ID,
		"states", len(m.order),
		"transitions", len(m.edges),
	)
	return m, nil
}

// New builds the machine and completes its initialization in one step.
func New(spec primitives.Specification, inits primitives.Initializers, opts ...Option) (*Machine, error) {
	m, err := Build(spec, opts...)
	if err != nil {
		return nil, err
	}
	if err := m.CompleteInitialization(inits); err != nil {
		return nil, err
	}
	return m, nil
}

// CompleteInitialization merges inits over the specification's own initializers,
// resolves parameters and targets, compiles guards and attaches every entity.
// It runs once; the first failure leaves the machine unusable.
func (m *Machine) CompleteInitialization(inits primitives.Initializers) error {
	switch m.phase {
	case phaseReady, phaseFailed:
		return primitives.NewSpecError(primitives.KindLifecycle, m.spec.ID, ErrAlreadyInitialized)
	case phaseClosed:
		return ErrClosed
	}

	if err := m.initialize(inits); err != nil {
		m.phase = phaseFailed
		m.detach()
		m.logger.Errorw("initialization failed", "machine", m.id, "spec", m.spec.ID, "error", err)
		return err
	}
	m.phase = phaseReady
	m.logger.Infow("machine initialized",
		"machine", m.id,
		"spec", m.spec.ID,
		"state", m.initial.spec.Name,
	)
	return nil
}

func (m *Machine) initialize(inits primitives.Initializers) error {
	resolved, err := resolveAll(m.spec.Initializers.Merge(inits))
	if err != nil {
		return err
	}
	m.global = resolved.Scope()

	for _, n := range m.order {
		init, err := m.bind(n.spec.Name, n.spec.Requires, n.state, resolved[n.spec.Name])
		if err != nil {
			return err
		}
		n.init = init
	}

	for _, e := range m.edges {
		init, err := m.bind(e.name, e.spec.Requires, e.transition, resolved[e.name])
		if err != nil {
			return err
		}
		e.init = init

		if g := e.transition.Guard(); g != "" {
			prog, err := expr.Compile(g)
			if err != nil {
				return primitives.NewSpecError(primitives.KindExpression, e.name, err)
			}
			e.guard = prog
		}
		if src, ok := expr.Template(e.transition.Target()); ok {
			if err := m.resolveTarget(e, src); err != nil {
				return err
			}
		}
	}

	for _, n := range m.order {
		if err := n.state.OnAttach(n.init); err != nil {
			return primitives.NewSpecError(primitives.KindAttach, n.spec.Name, err)
		}
		m.attached = append(m.attached, n.state)
	}
	for _, e := range m.edges {
		if err := e.transition.OnAttach(e.init); err != nil {
			return primitives.NewSpecError(primitives.KindAttach, e.name, err)
		}
		m.attached = append(m.attached, e.transition)
	}
	return nil
}

// bind copies the resolved initializer of one entity and checks its required keys.
func (m *Machine) bind(entity string, requires []string, v any, init primitives.Initializer) (primitives.Initializer, error) {
	resolved, err := init.Clone()
	if err != nil {
		return nil, primitives.NewSpecError(primitives.KindAttach, entity, err)
	}
	if err := primitives.CheckRequired(entity, requires, resolved); err != nil {
		return nil, err
	}
	if r, ok := v.(Requirer); ok {
		if err := primitives.CheckRequired(entity, r.RequiredKeys(), resolved); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

func (m *Machine) resolveTarget(e *edge, src string) error {
	prog, err := expr.Compile(src)
	if err != nil {
		return primitives.NewSpecError(primitives.KindExpression, e.name, err)
	}
	target, err := prog.EvalString(expr.NewEnv(e.init, m.global))
	if err != nil {
		return primitives.NewSpecError(primitives.KindExpression, e.name, err)
	}
	if e.target = m.nodes[target]; e.target == nil {
		return primitives.SpecErrorf(primitives.KindUnknownTarget, e.name, "target %q is not a declared state", target)
	}
	return nil
}

func (m *Machine) detach() {
	for i := len(m.attached) - 1; i >= 0; i-- {
		if d, ok := m.attached[i].(Detacher); ok {
			d.OnDetach()
		}
	}
	m.attached = nil
}

// Transit dispatches evt against the current state. An explicit transition on the
// event type is tried first, then the default transition. A failed guard
// evaluation returns its error and leaves the machine untouched.
func (m *Machine) Transit(evt primitives.Event) error {
	switch m.phase {
	case phaseReady:
	case phaseClosed:
		return ErrClosed
	default:
		return ErrNotInitialized
	}

	start := time.Now()
	cur := m.current.Load()
	name := m.events.Name(evt.Type)
	if !m.events.Contains(evt.Type) {
		return m.reject(cur, evt, name, "event type is not part of the event set")
	}

	e, err := m.selectEdge(cur, evt, name)
	if err != nil {
		return err
	}
	if e == nil {
		return m.reject(cur, evt, name, "")
	}

	prev := cur.state
	prev.OnStateIsNoLongerCurrent(evt, e.target.state)
	m.current.Store(e.target)
	e.target.state.OnStateBecomesCurrent(evt, prev)

	rec := TransitionRecord{
		MachineID:  m.id,
		SpecID:     m.spec.ID,
		From:       prev.Name(),
		To:         e.target.spec.Name,
		Event:      name,
		Transition: e.name,
		Default:    e.spec.IsDefault(),
		Duration:   time.Since(start),
		At:         start,
	}
	m.logger.Debugw("transition",
		"machine", m.id,
		"from", rec.From,
		"to", rec.To,
		"event", rec.Event,
		"transition", rec.Transition,
	)
	for _, o := range m.observers {
		o.Transitioned(rec)
	}
	return nil
}

func (m *Machine) selectEdge(cur *stateNode, evt primitives.Event, name string) (*edge, error) {
	for _, e := range []*edge{cur.byEvent[evt.Type], cur.fallback} {
		if e == nil {
			continue
		}
		ok, err := m.eligible(e, evt, name)
		if err != nil {
			return nil, err
		}
		if ok {
			return e, nil
		}
	}
	return nil, nil
}

func (m *Machine) eligible(e *edge, evt primitives.Event, name string) (bool, error) {
	if e.guard == nil {
		return true, nil
	}
	ok, err := e.guard.EvalBool(dispatchEnv(name, evt.Payload, e.init, m.global))
	if err != nil {
		m.logger.Warnw("guard evaluation failed", "machine", m.id, "transition", e.name, "error", err)
		return false, primitives.NewSpecError(primitives.KindExpression, e.name, err)
	}
	return ok, nil
}

func (m *Machine) reject(cur *stateNode, evt primitives.Event, name, reason string) error {
	cur.state.OnInvalidTransition(evt)
	err := &InvalidEventError{
		MachineID: m.id,
		State:     cur.spec.Name,
		Event:     name,
		Type:      evt.Type,
		Reason:    reason,
	}
	m.logger.Debugw("invalid event", "machine", m.id, "state", err.State, "event", name)
	rec := RejectionRecord{
		MachineID: m.id,
		SpecID:    m.spec.ID,
		State:     cur.spec.Name,
		Event:     name,
		At:        time.Now(),
	}
	for _, o := range m.observers {
		o.Rejected(rec)
	}
	return err
}

// Event builds an Event from a declared event name.
func (m *Machine) Event(name string, payload any) (primitives.Event, error) {
	t, ok := m.events.Lookup(name)
	if !ok {
		return primitives.Event{}, &InvalidEventError{
			MachineID: m.id,
			State:     m.current.Load().spec.Name,
			Event:     name,
			Type:      -1,
			Reason:    "event is not declared",
		}
	}
	return primitives.NewEvent(t, payload), nil
}

// TransitName is Event followed by Transit.
func (m *Machine) TransitName(name string, payload any) error {
	evt, err := m.Event(name, payload)
	if err != nil {
		return err
	}
	return m.Transit(evt)
}

// CurrentState returns the current state. Before initialization it is the initial state.
func (m *Machine) CurrentState() State {
	return m.current.Load().state
}

// State returns the state named name.
func (m *Machine) State(name string) (State, bool) {
	n, ok := m.nodes[name]
	if !ok {
		return nil, false
	}
	return n.state, true
}

// Transition returns the transition entity named name.
func (m *Machine) Transition(name string) (Transition, bool) {
	for _, e := range m.edges {
		if e.name == name {
			return e.transition, true
		}
	}
	return nil, false
}

// Events returns the machine's event set.
func (m *Machine) Events() *primitives.EventSet { return m.events }

// ID returns the machine instance ID.
func (m *Machine) ID() string { return m.id }

// SpecID returns the ID of the specification the machine was built from.
func (m *Machine) SpecID() string { return m.spec.ID }

// Initialized reports whether CompleteInitialization succeeded and Close was not called.
func (m *Machine) Initialized() bool { return m.phase == phaseReady }

// Close detaches every entity. Further dispatch fails with ErrClosed.
func (m *Machine) Close() error {
	if m.phase == phaseClosed {
		return nil
	}
	m.phase = phaseClosed
	m.detach()
	m.logger.Debugw("machine closed", "machine", m.id)
	return nil
}

func (m *Machine) String() string {
	return fmt.Sprintf("machine %s (%s) in %s", m.id, m.spec.ID, m.current.Load().spec.Name)
}
