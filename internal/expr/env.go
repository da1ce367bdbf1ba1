package expr

import "reflect"

// Env resolves variable references against an ordered list of scopes.
// Earlier scopes shadow later ones.
type Env struct {
	scopes []map[string]any
}

// NewEnv creates an Env over scopes, highest priority first. Nil scopes are skipped.
func NewEnv(scopes ...map[string]any) *Env {
	e := &Env{scopes: make([]map[string]any, 0, len(scopes))}
	for _, s := range scopes {
		if s != nil {
			e.scopes = append(e.scopes, s)
		}
	}
	return e
}

// Lookup resolves a dotted path. The first scope holding path[0] decides; the rest of
// the path walks nested maps with string keys.
func (e *Env) Lookup(path []string) (any, bool) {
	if e == nil || len(path) == 0 {
		return nil, false
	}
	for _, s := range e.scopes {
		v, ok := s[path[0]]
		if !ok {
			continue
		}
		for _, seg := range path[1:] {
			if v, ok = field(v, seg); !ok {
				return nil, false
			}
		}
		return v, true
	}
	return nil, false
}

func field(v any, key string) (any, bool) {
	switch m := v.(type) {
	case map[string]any:
		x, ok := m[key]
		return x, ok
	case map[string]string:
		x, ok := m[key]
		return x, ok
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	x := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	if !x.IsValid() {
		return nil, false
	}
	return x.Interface(), true
}
