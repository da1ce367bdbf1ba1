// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/fsmx/internal/primitives"
)

// GenFlatSpec creates a ring of n states cycling via "tick" events.
func GenFlatSpec(n int) primitives.Specification {
	if n < 1 {
		n = 1
	}
	spec := primitives.Specification{
		ID:      fmt.Sprintf("flat_%d", n),
		Events:  []string{"tick"},
		Initial: "s0",
		States:  make([]primitives.StateSpec, 0, n),
	}
	for i := 0; i < n; i++ {
		spec.States = append(spec.States, primitives.StateSpec{
			Name: fmt.Sprintf("s%d", i),
			Transitions: []primitives.TransitionSpec{
				{On: "tick", Target: fmt.Sprintf("s%d", (i+1)%n)},
			},
		})
	}
	return spec
}

// GenWideSpec creates one main state with numEvents event-specific transitions and a
// guarded default, each target leading back to main on any event.
func GenWideSpec(numEvents int) primitives.Specification {
	if numEvents < 1 {
		numEvents = 1
	}
	spec := primitives.Specification{
		ID:      fmt.Sprintf("wide_%d", numEvents),
		Initial: "main",
	}
	main := primitives.StateSpec{Name: "main"}
	for i := 0; i < numEvents; i++ {
		event := fmt.Sprintf("e%d", i)
		target := fmt.Sprintf("target%d", i)
		spec.Events = append(spec.Events, event)
		main.Transitions = append(main.Transitions, primitives.TransitionSpec{
			On:     event,
			Target: target,
			Guard:  "payload.n >= 0",
		})
		spec.States = append(spec.States, primitives.StateSpec{
			Name:        target,
			Transitions: []primitives.TransitionSpec{{On: primitives.DefaultTrigger, Target: "main"}},
		})
	}
	spec.States = append([]primitives.StateSpec{main}, spec.States...)
	return spec
}

// GenSpecYAML renders GenFlatSpec(n) as a YAML document.
func GenSpecYAML(n int) []byte {
	data, err := yaml.Marshal(GenFlatSpec(n))
	if err != nil {
		panic(err)
	}
	return data
}
