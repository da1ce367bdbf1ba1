package loader

import (
	"github.com/looplab/fsm"

	"github.com/comalice/fsmx/internal/primitives"
)

// FromLooplab converts a looplab/fsm event table into a Specification. States are
// declared in order of first appearance, starting with initial; events keep their
// table order. Each source of an event becomes one transition.
func FromLooplab(id, initial string, events fsm.Events) (primitives.Specification, error) {
	spec := primitives.Specification{ID: id, Initial: initial}

	states := map[string]int{}
	addState := func(name string) int {
		if i, ok := states[name]; ok {
			return i
		}
		states[name] = len(spec.States)
		spec.States = append(spec.States, primitives.StateSpec{Name: name})
		return states[name]
	}
	addState(initial)

	declared := map[string]bool{}
	for _, e := range events {
		if !declared[e.Name] {
			declared[e.Name] = true
			spec.Events = append(spec.Events, e.Name)
		}
		for _, src := range e.Src {
			addState(src)
		}
		addState(e.Dst)
	}

	for _, e := range events {
		for _, src := range e.Src {
			i := states[src]
			spec.States[i].Transitions = append(spec.States[i].Transitions, primitives.TransitionSpec{
				On:     e.Name,
				Target: e.Dst,
			})
		}
	}

	if err := spec.Validate(); err != nil {
		return primitives.Specification{}, err
	}
	return spec, nil
}
