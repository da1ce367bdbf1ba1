package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/fsmx/internal/primitives"
)

type counterState struct {
	*BaseState
	step int
}

func (s *counterState) OnStateBecomesCurrent(primitives.Event, State) {
	v, _ := s.Attributes().Get("visits")
	n, _ := v.(int)
	s.Attributes().Set("visits", n+s.step)
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	c := func(spec primitives.StateSpec, _ primitives.Initializer) (State, error) {
		return &counterState{BaseState: NewBaseState(spec), step: 1}, nil
	}

	require.NoError(t, r.RegisterState("counter", c))
	assert.True(t, errors.Is(r.RegisterState("counter", c), ErrKindExists))
	assert.True(t, errors.Is(r.RegisterState("", c), ErrReservedKind))
	assert.True(t, errors.Is(r.RegisterState(BasicKind, c), ErrReservedKind))
	assert.Equal(t, []string{"counter"}, r.StateKinds())

	assert.Panics(t, func() { r.MustRegisterState("counter", c) })
	assert.Panics(t, func() {
		r.MustRegisterTransition("", func(string, primitives.TransitionSpec, primitives.Initializer) (Transition, error) {
			return nil, nil
		})
	})

	s, err := r.CreateState(primitives.StateSpec{Name: "x", Kind: "other"}, nil)
	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestRegistry_MachineUsesRegisteredKinds(t *testing.T) {
	r := NewRegistry()
	r.MustRegisterState("counter", func(spec primitives.StateSpec, init primitives.Initializer) (State, error) {
		step, _ := init["step"].(int)
		return &counterState{BaseState: NewBaseState(spec), step: step}, nil
	})
	r.MustRegisterTransition("strict", func(name string, spec primitives.TransitionSpec, _ primitives.Initializer) (Transition, error) {
		spec.Guard = "payload == 'ok'"
		return NewBaseTransition(name, spec), nil
	})

	spec := referenceSpec()
	spec.States[1].Kind = "counter"
	spec.States[0].Transitions[0].Kind = "strict"
	spec.Initializers = primitives.Initializers{"state2": {"step": 2}}

	m, err := New(spec, nil, WithRegistry(r))
	require.NoError(t, err)

	assert.True(t, IsInvalidEvent(m.TransitName("A", "nope")))
	require.NoError(t, m.TransitName("A", "ok"))
	require.NoError(t, m.TransitName("C", nil))

	st, ok := m.CurrentState().(*counterState)
	require.True(t, ok)
	v, _ := st.Attributes().Get("visits")
	assert.Equal(t, 4, v)

	// Without the registry the kinds are unresolved.
	_, err = Build(spec, WithRegistry(NewRegistry()))
	assert.True(t, primitives.IsKind(err, primitives.KindUnresolvedEntity))
}

func TestRegistry_UserFactoryWinsOverRegistry(t *testing.T) {
	r := NewRegistry()
	r.MustRegisterState("counter", func(spec primitives.StateSpec, _ primitives.Initializer) (State, error) {
		return &counterState{BaseState: NewBaseState(spec), step: 1}, nil
	})
	own := WithStateFactory(StateFactoryFunc(func(spec primitives.StateSpec, _ primitives.Initializer) (State, error) {
		if spec.Kind != "counter" {
			return nil, nil
		}
		return &counterState{BaseState: NewBaseState(spec), step: 10}, nil
	}))

	spec := referenceSpec()
	spec.States[1].Kind = "counter"
	m, err := New(spec, nil, WithRegistry(r), own)
	require.NoError(t, err)

	st, ok := m.State("state2")
	require.True(t, ok)
	assert.Equal(t, 10, st.(*counterState).step)
}
