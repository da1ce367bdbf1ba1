package primitives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceSpec is the three-state table used across the engine tests.
func referenceSpec() Specification {
	return Specification{
		ID:      "reference",
		Events:  []string{"A", "B", "C"},
		Initial: "state1",
		States: []StateSpec{
			{Name: "state1", Transitions: []TransitionSpec{
				{On: "A", Target: "state2"},
			}},
			{Name: "state2", Transitions: []TransitionSpec{
				{On: "A", Target: "state3"},
				{On: "B", Target: "state3"},
				{On: DefaultTrigger, Target: "state2"},
			}},
			{Name: "state3", Transitions: []TransitionSpec{
				{On: "A", Target: "state1"},
				{On: "B", Target: "state1"},
				{On: "C", Target: "state2"},
			}},
		},
	}
}

func TestSpecificationValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Specification)
		kind   ErrorKind
	}{
		{"valid", func(s *Specification) {}, ""},
		{"initial by flag", func(s *Specification) {
			s.Initial = ""
			s.States[1].Initial = true
		}, ""},
		{"flag agrees with field", func(s *Specification) { s.States[0].Initial = true }, ""},
		{"expression target", func(s *Specification) { s.States[0].Transitions[0].Target = "${next}" }, ""},
		{"no states", func(s *Specification) { s.States = nil }, KindEmpty},
		{"bad version", func(s *Specification) { s.Version = "3.0.0" }, KindVersion},
		{"reserved event", func(s *Specification) { s.Events = append(s.Events, "default") }, KindInvalidEvents},
		{"empty state name", func(s *Specification) { s.States[2].Name = "" }, KindInvalidName},
		{"duplicate state", func(s *Specification) { s.States[2].Name = "state1" }, KindDuplicateState},
		{"no initial", func(s *Specification) { s.Initial = "" }, KindNoInitialState},
		{"undeclared initial", func(s *Specification) { s.Initial = "state9" }, KindNoInitialState},
		{"two initial flags", func(s *Specification) {
			s.Initial = ""
			s.States[0].Initial = true
			s.States[1].Initial = true
		}, KindMultipleInitialStates},
		{"flag disagrees with field", func(s *Specification) { s.States[1].Initial = true }, KindMultipleInitialStates},
		{"unknown event", func(s *Specification) { s.States[0].Transitions[0].On = "Z" }, KindUnknownEvent},
		{"missing trigger", func(s *Specification) { s.States[0].Transitions[0].On = "" }, KindUnknownEvent},
		{"unknown target", func(s *Specification) { s.States[0].Transitions[0].Target = "state9" }, KindUnknownTarget},
		{"missing target", func(s *Specification) { s.States[0].Transitions[0].Target = "" }, KindUnknownTarget},
		{"duplicate transition", func(s *Specification) {
			s.States[0].Transitions = append(s.States[0].Transitions, TransitionSpec{On: "A", Target: "state3"})
		}, KindDuplicateTransition},
		{"two defaults", func(s *Specification) {
			s.States[1].Transitions = append(s.States[1].Transitions, TransitionSpec{On: DefaultTrigger, Target: "state1"})
		}, KindDuplicateDefault},
		{"transition named like a state", func(s *Specification) {
			s.States[0].Transitions[0].Name = "state3"
		}, KindDuplicateName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := referenceSpec()
			tt.mutate(&spec)
			err := spec.Validate()
			if tt.kind == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrSpecification)
			assert.True(t, IsKind(err, tt.kind), "got %v", err)
		})
	}
}

func TestInitialState(t *testing.T) {
	spec := referenceSpec()
	name, err := spec.InitialState()
	require.NoError(t, err)
	assert.Equal(t, "state1", name)
}

func TestTransitionEntityName(t *testing.T) {
	tr := TransitionSpec{On: "A", Target: "state2"}
	assert.Equal(t, "state1.A", tr.EntityName("state1"))
	tr.Name = "promote"
	assert.Equal(t, "promote", tr.EntityName("state1"))
	assert.False(t, tr.IsDefault())
	assert.True(t, TransitionSpec{On: DefaultTrigger}.IsDefault())
}

func TestCheckInitializers(t *testing.T) {
	spec := referenceSpec()
	spec.States[1].Requires = []string{"timeout"}
	spec.States[0].Transitions[0].Requires = []string{"weight"}

	err := spec.CheckInitializers(Initializers{
		"state2":   {"timeout": 5},
		"state1.A": {"weight": 1},
	})
	assert.NoError(t, err)

	err = spec.CheckInitializers(Initializers{"state2": {"timeout": 5}})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindMissingInitializerKey))
	assert.Contains(t, err.Error(), `"state1.A"`)
	assert.Contains(t, err.Error(), `"weight"`)
}

func TestSpecErrorFormatting(t *testing.T) {
	err := SpecErrorf(KindUnknownTarget, "state1.A", "target %q is not a declared state", "x")
	assert.Equal(t, `specification: unknown target state "state1.A": target "x" is not a declared state`, err.Error())
	assert.ErrorIs(t, err, ErrSpecification)
}
