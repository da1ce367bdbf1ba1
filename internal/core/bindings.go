package core

import (
	"sort"

	"github.com/comalice/fsmx/internal/expr"
	"github.com/comalice/fsmx/internal/primitives"
)

// resolveInitializer returns a deep copy of init with every top-level "${...}"
// string replaced by its value. Expressions see the entity's own raw values first,
// then the global initializer scope.
func resolveInitializer(entity string, init primitives.Initializer, global map[string]any) (primitives.Initializer, error) {
	out, err := init.Clone()
	if err != nil {
		return nil, primitives.NewSpecError(primitives.KindAttach, entity, err)
	}

	keys := make([]string, 0, len(out))
	for k := range out {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := expr.NewEnv(init, global)
	for _, k := range keys {
		s, ok := out[k].(string)
		if !ok {
			continue
		}
		src, ok := expr.Template(s)
		if !ok {
			continue
		}
		prog, err := expr.Compile(src)
		if err != nil {
			return nil, primitives.NewSpecError(primitives.KindExpression, entity+"."+k, err)
		}
		v, err := prog.Eval(env)
		if err != nil {
			return nil, primitives.NewSpecError(primitives.KindExpression, entity+"."+k, err)
		}
		out[k] = v
	}
	return out, nil
}

// resolveAll resolves every entity's initializer against the raw merged scope.
// The result shares no maps with merged.
func resolveAll(merged primitives.Initializers) (primitives.Initializers, error) {
	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	raw := merged.Scope()
	out := make(primitives.Initializers, len(merged))
	for _, name := range names {
		init, err := resolveInitializer(name, merged[name], raw)
		if err != nil {
			return nil, err
		}
		out[name] = init
	}
	return out, nil
}

// dispatchEnv is the binding environment of a guard: the event, then the
// transition's own initializer, then the global initializers.
func dispatchEnv(event string, payload any, own primitives.Initializer, global map[string]any) *expr.Env {
	return expr.NewEnv(
		map[string]any{"event": event, "payload": payload},
		own,
		global,
	)
}
