package fsmx_test

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/fsmx"
	"github.com/comalice/fsmx/testutil"
)

func referenceBuilder() *fsmx.Builder {
	b := fsmx.NewBuilder("reference").Events("A", "B", "C")
	b.State("state1").Initial().On("A", "state2")
	b.State("state2").On("A", "state3").On("B", "state3").Default("state2")
	b.State("state3").On("A", "state1").On("B", "state1").On("C", "state2")
	return b
}

func TestBuilder_ReferenceScenario(t *testing.T) {
	m, err := referenceBuilder().New(nil)
	require.NoError(t, err)
	testutil.RunScenario(t, m, testutil.ReferenceSteps())

	s, err := referenceBuilder().NewSync(nil)
	require.NoError(t, err)
	testutil.RunScenario(t, s, testutil.ReferenceSteps())
}

func TestBuilder_MatchesReferenceSpec(t *testing.T) {
	spec, err := referenceBuilder().Version(fsmx.SchemaVersion).Spec()
	require.NoError(t, err)
	want, err := json.Marshal(testutil.ReferenceSpec())
	require.NoError(t, err)
	got, err := json.Marshal(spec)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestBuilder_Spec(t *testing.T) {
	b := fsmx.NewBuilder("door").Version(fsmx.SchemaVersion).Events("open", "close", "lock")
	b.State("closed").Initial().Requires("code").
		On("open", "opened").
		On("lock", "locked", fsmx.Named("lock"), fsmx.Guard("payload == code"), fsmx.Requiring("code")).
		State("opened").On("close", "closed").
		State("locked").Final().Kind(fsmx.BasicKind)
	b.Initializer("closed", fsmx.Initializer{"code": "1234"})
	b.Initializer("lock", fsmx.Initializer{"code": "1234"})

	spec, err := b.Spec()
	require.NoError(t, err)
	assert.Equal(t, "closed", spec.Initial)
	require.Len(t, spec.States, 3)
	assert.Equal(t, []string{"code"}, spec.States[0].Requires)
	assert.Equal(t, "lock", spec.States[0].Transitions[1].Name)
	assert.True(t, spec.States[2].Final)

	// The returned spec is a copy.
	spec.States[0].Transitions[0].Target = "locked"
	spec.Initializers["lock"]["code"] = "0000"
	again, err := b.Spec()
	require.NoError(t, err)
	assert.Equal(t, "opened", again.States[0].Transitions[0].Target)
	assert.Equal(t, "1234", again.Initializers["lock"]["code"])

	m, err := b.New(nil)
	require.NoError(t, err)
	assert.True(t, fsmx.IsInvalidEvent(m.TransitName("lock", "9999")))
	require.NoError(t, m.TransitName("lock", "1234"))
	assert.True(t, m.CurrentState().IsFinal())
}

func TestBuilder_StateIsReopened(t *testing.T) {
	b := fsmx.NewBuilder("x").Events("go")
	b.State("a").Initial()
	b.State("b")
	b.State("a").On("go", "b")

	spec, err := b.Spec()
	require.NoError(t, err)
	require.Len(t, spec.States, 2)
	assert.Len(t, spec.States[0].Transitions, 1)
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name  string
		build func() *fsmx.Builder
		kind  fsmx.ErrorKind
	}{
		{"empty", func() *fsmx.Builder { return fsmx.NewBuilder("e") }, fsmx.KindEmpty},
		{"no initial", func() *fsmx.Builder {
			b := fsmx.NewBuilder("e").Events("go")
			b.State("a").On("go", "a")
			return b
		}, fsmx.KindNoInitialState},
		{"unknown target", func() *fsmx.Builder {
			b := fsmx.NewBuilder("e").Events("go")
			b.State("a").Initial().On("go", "nowhere")
			return b
		}, fsmx.KindUnknownTarget},
		{"undeclared event", func() *fsmx.Builder {
			b := fsmx.NewBuilder("e").Events("go")
			b.State("a").Initial().On("stop", "a")
			return b
		}, fsmx.KindUnknownEvent},
		{"two defaults", func() *fsmx.Builder {
			b := fsmx.NewBuilder("e")
			b.State("a").Initial().Default("a").Default("a", fsmx.Named("other"))
			return b
		}, fsmx.KindDuplicateDefault},
		{"bad version", func() *fsmx.Builder {
			b := fsmx.NewBuilder("e").Version("2.0.0")
			b.State("a").Initial()
			return b
		}, fsmx.KindVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build().Build()
			require.Error(t, err)
			assert.True(t, errors.Is(err, fsmx.ErrSpecification))
			assert.True(t, fsmx.IsKind(err, tt.kind), "got %v", err)
		})
	}
}

func TestBuilder_MissingInitializerAtInit(t *testing.T) {
	b := fsmx.NewBuilder("e").Events("go")
	b.State("a").Initial().Requires("timeout").On("go", "a")

	m, err := b.Build()
	require.NoError(t, err)
	err = m.CompleteInitialization(nil)
	assert.True(t, fsmx.IsKind(err, fsmx.KindMissingInitializerKey))

	_, err = b.NewSync(fsmx.Initializers{"a": {"timeout": 5}})
	require.NoError(t, err)
}
