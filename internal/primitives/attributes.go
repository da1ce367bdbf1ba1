package primitives

import (
	"errors"
	"sync"

	"github.com/tiendc/go-deepcopy"
)

// ErrAttributesLoaded is returned when an entity's attributes are populated twice.
var ErrAttributesLoaded = errors.New("attributes already loaded")

// Initializer is the configuration handed to one entity when it is attached.
type Initializer map[string]any

// Initializers maps entity names to their initializers.
type Initializers map[string]Initializer

// Clone returns a deep copy of the initializer.
func (in Initializer) Clone() (Initializer, error) {
	if in == nil {
		return Initializer{}, nil
	}
	var out Initializer
	if err := deepcopy.Copy(&out, &in); err != nil {
		return nil, err
	}
	return out, nil
}

// Merge returns a new Initializers holding in, with entries from over replacing
// whole entity entries of the same name.
func (in Initializers) Merge(over Initializers) Initializers {
	out := make(Initializers, len(in)+len(over))
	for k, v := range in {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Scope exposes the initializers as an expression scope keyed by entity name.
func (in Initializers) Scope() map[string]any {
	scope := make(map[string]any, len(in))
	for k, v := range in {
		scope[k] = map[string]any(v)
	}
	return scope
}

// Attributes is the opaque per-entity storage populated once at attach time.
// Reads are safe for concurrent use.
type Attributes struct {
	mu     sync.RWMutex
	data   Initializer
	loaded bool
}

// Load populates the attributes from a deep copy of init. It fails on a second call.
func (a *Attributes) Load(init Initializer) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.loaded {
		return ErrAttributesLoaded
	}
	data, err := init.Clone()
	if err != nil {
		return err
	}
	a.data = data
	a.loaded = true
	return nil
}

// Get retrieves a value by key.
func (a *Attributes) Get(key string) (any, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.data[key]
	return v, ok
}

// Set stores a value by key. Meant for the entity's own transit hooks.
func (a *Attributes) Set(key string, val any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.data == nil {
		a.data = Initializer{}
	}
	a.data[key] = val
}

// Snapshot returns a shallow copy of all attributes.
func (a *Attributes) Snapshot() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()
	snap := make(map[string]any, len(a.data))
	for k, v := range a.data {
		snap[k] = v
	}
	return snap
}
