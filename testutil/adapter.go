package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comalice/fsmx/internal/core"
	"github.com/comalice/fsmx/internal/primitives"
)

// Runner is satisfied by both *core.Machine and *core.SyncMachine.
// This allows running the same scenario on both engines.
type Runner interface {
	TransitName(name string, payload any) error
	CurrentState() core.State
}

var (
	_ Runner = (*core.Machine)(nil)
	_ Runner = (*core.SyncMachine)(nil)
)

// Step is one event of a scenario and the state expected after it.
// Invalid steps must fail with an invalid-event error and leave the state at Want.
type Step struct {
	Event   string
	Payload any
	Want    string
	Invalid bool
}

// ReferenceSpec is state1 --A--> state2 --B--> state3; state2 --A--> state3,
// state2 --default--> state2; state3 --A/B--> state1, state3 --C--> state2.
func ReferenceSpec() primitives.Specification {
	return primitives.Specification{
		Version: primitives.SchemaVersion,
		ID:      "reference",
		Events:  []string{"A", "B", "C"},
		Initial: "state1",
		States: []primitives.StateSpec{
			{Name: "state1", Transitions: []primitives.TransitionSpec{
				{On: "A", Target: "state2"},
			}},
			{Name: "state2", Transitions: []primitives.TransitionSpec{
				{On: "A", Target: "state3"},
				{On: "B", Target: "state3"},
				{On: primitives.DefaultTrigger, Target: "state2"},
			}},
			{Name: "state3", Transitions: []primitives.TransitionSpec{
				{On: "A", Target: "state1"},
				{On: "B", Target: "state1"},
				{On: "C", Target: "state2"},
			}},
		},
	}
}

// ReferenceSteps drives ReferenceSpec through A, C, A, B, C.
func ReferenceSteps() []Step {
	return []Step{
		{Event: "A", Want: "state2"},
		{Event: "C", Want: "state2"},
		{Event: "A", Want: "state3"},
		{Event: "B", Want: "state1"},
		{Event: "C", Want: "state1", Invalid: true},
	}
}

// RunScenario applies steps to r in order.
func RunScenario(t testing.TB, r Runner, steps []Step) {
	t.Helper()
	for i, s := range steps {
		err := r.TransitName(s.Event, s.Payload)
		if s.Invalid {
			require.Error(t, err, "step %d (%s)", i, s.Event)
			require.True(t, core.IsInvalidEvent(err), "step %d (%s): %v", i, s.Event, err)
		} else {
			require.NoError(t, err, "step %d (%s)", i, s.Event)
		}
		require.Equal(t, s.Want, r.CurrentState().Name(), "step %d (%s)", i, s.Event)
	}
}
