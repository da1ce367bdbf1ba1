// Package loader reads specifications from YAML, JSON and looplab/fsm event tables.
// Every loader returns a validated Specification.
package loader

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/comalice/fsmx/internal/primitives"
)

// ErrUnsupportedFormat is returned by LoadFile for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported specification format")

type options struct {
	requireVersion bool
}

// Option configures a loader call.
type Option func(*options)

// RequireVersion rejects documents that do not declare a schema version.
func RequireVersion(require bool) Option {
	return func(o *options) { o.requireVersion = require }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// FromYAML decodes a YAML document. Unknown fields are rejected.
func FromYAML(data []byte, opts ...Option) (primitives.Specification, error) {
	var spec primitives.Specification
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return primitives.Specification{}, errors.Wrap(err, "decode yaml specification")
	}
	return finish(spec, newOptions(opts))
}

// FromJSON decodes a JSON document. Unknown fields are rejected.
func FromJSON(data []byte, opts ...Option) (primitives.Specification, error) {
	var spec primitives.Specification
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		return primitives.Specification{}, errors.Wrap(err, "decode json specification")
	}
	return finish(spec, newOptions(opts))
}

// LoadFile reads a specification, choosing the decoder by file extension.
func LoadFile(path string, opts ...Option) (primitives.Specification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return primitives.Specification{}, errors.Wrapf(err, "read specification %s", path)
	}
	var spec primitives.Specification
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		spec, err = FromYAML(data, opts...)
	case ".json":
		spec, err = FromJSON(data, opts...)
	default:
		return primitives.Specification{}, errors.Wrapf(ErrUnsupportedFormat, "file %s", path)
	}
	if err != nil {
		return primitives.Specification{}, errors.WithMessagef(err, "load %s", path)
	}
	return spec, nil
}

func finish(spec primitives.Specification, o options) (primitives.Specification, error) {
	if o.requireVersion && spec.Version == "" {
		return primitives.Specification{}, primitives.SpecErrorf(primitives.KindVersion, spec.ID, "version is required")
	}
	if err := spec.Validate(); err != nil {
		return primitives.Specification{}, err
	}
	return spec, nil
}
