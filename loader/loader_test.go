package loader_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/fsmx"
	"github.com/comalice/fsmx/loader"
	"github.com/comalice/fsmx/testutil"
)

func referenceBuilder() *fsmx.Builder {
	b := fsmx.NewBuilder("reference").Version("1.0.0").Events("A", "B", "C")
	b.State("state1").Initial().On("A", "state2")
	b.State("state2").On("A", "state3").On("B", "state3").Default("state2")
	b.State("state3").On("A", "state1").On("B", "state1").On("C", "state2")
	return b
}

// canonical renders a specification so nil and empty fields compare equal.
func canonical(t *testing.T, spec fsmx.Specification) string {
	t.Helper()
	data, err := json.Marshal(spec)
	require.NoError(t, err)
	return string(data)
}

func TestFrontEndsAgree(t *testing.T) {
	want, err := referenceBuilder().Spec()
	require.NoError(t, err)

	for _, file := range []string{"reference.yaml", "reference.json"} {
		t.Run(file, func(t *testing.T) {
			spec, err := loader.LoadFile(filepath.Join("testdata", file))
			require.NoError(t, err)
			assert.Equal(t, canonical(t, want), canonical(t, spec))
		})
	}
}

func TestLoadFile_ReferenceScenario(t *testing.T) {
	spec, err := loader.LoadFile(filepath.Join("testdata", "reference.yaml"), loader.RequireVersion(true))
	require.NoError(t, err)

	m, err := fsmx.New(spec, nil)
	require.NoError(t, err)
	testutil.RunScenario(t, m, testutil.ReferenceSteps())
}

func TestLoadFile_ParameterizedSpec(t *testing.T) {
	spec, err := loader.LoadFile(filepath.Join("testdata", "vending.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "idle", spec.States[0].Name)
	assert.True(t, spec.States[0].Initial)

	m, err := fsmx.New(spec, nil)
	require.NoError(t, err)
	require.NoError(t, m.TransitName("coin", nil))
	require.NoError(t, m.TransitName("select", 1))
	assert.Equal(t, "paid", m.CurrentState().Name(), "guard fails, default keeps paid")
	require.NoError(t, m.TransitName("select", 2))
	assert.Equal(t, "vending", m.CurrentState().Name())
	assert.True(t, m.CurrentState().IsFinal())

	// Overriding the price at initialization.
	m, err = fsmx.New(spec, fsmx.Initializers{"paid": {"price": 5}})
	require.NoError(t, err)
	require.NoError(t, m.TransitName("coin", nil))
	require.NoError(t, m.TransitName("select", 2))
	assert.Equal(t, "paid", m.CurrentState().Name())
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := loader.LoadFile(filepath.Join("testdata", "broken.yml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fsmx.ErrSpecification))
	assert.True(t, fsmx.IsKind(err, fsmx.KindUnknownTarget))
	assert.Contains(t, err.Error(), "broken.yml")

	_, err = loader.LoadFile(filepath.Join("testdata", "broken.yml"), loader.RequireVersion(true))
	assert.True(t, fsmx.IsKind(err, fsmx.KindVersion))

	_, err = loader.LoadFile(filepath.Join("testdata", "notes.txt"))
	assert.True(t, errors.Is(err, loader.ErrUnsupportedFormat))

	_, err = loader.LoadFile(filepath.Join("testdata", "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFromYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"syntax", "states: [\n"},
		{"unknown field", "id: x\nstates:\n  - name: a\n    initial: true\n    colour: red\n"},
		{"wrong type", "id: x\nevents: 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.FromYAML([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "decode yaml specification")
			assert.False(t, errors.Is(err, fsmx.ErrSpecification))
		})
	}
}

func TestFromJSON_Errors(t *testing.T) {
	_, err := loader.FromJSON([]byte(`{"id": "x", "states": [{"name": "a", "colour": "red"}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode json specification")

	_, err = loader.FromJSON([]byte(`{"id": "x", "states": [{"name": "a"}, {"name": "a", "initial": true}]}`))
	assert.True(t, fsmx.IsKind(err, fsmx.KindDuplicateState))

	_, err = loader.FromJSON([]byte(`{"version": "0.9.0", "id": "x", "states": [{"name": "a", "initial": true}]}`))
	assert.True(t, fsmx.IsKind(err, fsmx.KindVersion))
}
