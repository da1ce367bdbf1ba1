package primitives

import (
	"strings"

	"github.com/comalice/fsmx/internal/expr"
)

// Specification is the normalized machine description produced by every front-end.
type Specification struct {
	Version      string       `json:"version,omitempty" yaml:"version,omitempty"`
	ID           string       `json:"id,omitempty" yaml:"id,omitempty"`
	Events       []string     `json:"events" yaml:"events"`
	Initial      string       `json:"initial,omitempty" yaml:"initial,omitempty"`
	States       []StateSpec  `json:"states" yaml:"states"`
	Initializers Initializers `json:"initializers,omitempty" yaml:"initializers,omitempty"`
}

// StateSpec describes one state and its outgoing transitions.
type StateSpec struct {
	Name        string           `json:"name" yaml:"name"`
	Kind        string           `json:"kind,omitempty" yaml:"kind,omitempty"`
	Initial     bool             `json:"initial,omitempty" yaml:"initial,omitempty"`
	Final       bool             `json:"final,omitempty" yaml:"final,omitempty"`
	Requires    []string         `json:"requires,omitempty" yaml:"requires,omitempty"`
	Transitions []TransitionSpec `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

// TransitionSpec describes one edge. On names an event or DefaultTrigger.
// Target is a state name or a "${...}" expression resolved at initialization.
type TransitionSpec struct {
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Kind     string   `json:"kind,omitempty" yaml:"kind,omitempty"`
	On       string   `json:"on" yaml:"on"`
	Target   string   `json:"target" yaml:"target"`
	Guard    string   `json:"guard,omitempty" yaml:"guard,omitempty"`
	Requires []string `json:"requires,omitempty" yaml:"requires,omitempty"`
}

// EntityName returns the initializer key of the transition leaving state.
func (t TransitionSpec) EntityName(state string) string {
	if t.Name != "" {
		return t.Name
	}
	return state + "." + t.On
}

// IsDefault reports whether the transition is the wildcard fallback.
func (t TransitionSpec) IsDefault() bool { return t.On == DefaultTrigger }

// EventSet builds the closed event set declared by the specification.
func (s *Specification) EventSet() (*EventSet, error) {
	return NewEventSet(s.Events...)
}

// InitialState resolves the single initial state from the Initial field and the
// per-state flags. Both may be given but must agree.
func (s *Specification) InitialState() (string, error) {
	flagged := ""
	for _, st := range s.States {
		if !st.Initial {
			continue
		}
		if flagged != "" {
			return "", SpecErrorf(KindMultipleInitialStates, st.Name, "%q is also initial", flagged)
		}
		flagged = st.Name
	}
	switch {
	case s.Initial == "" && flagged == "":
		return "", SpecErrorf(KindNoInitialState, s.ID, "no state is designated initial")
	case s.Initial == "":
		return flagged, nil
	case flagged != "" && flagged != s.Initial:
		return "", SpecErrorf(KindMultipleInitialStates, flagged, "initial is %q", s.Initial)
	}
	for _, st := range s.States {
		if st.Name == s.Initial {
			return s.Initial, nil
		}
	}
	return "", SpecErrorf(KindNoInitialState, s.Initial, "initial state is not declared")
}

// Validate checks the structural invariants of the specification. It does not
// compile expressions or consult initializers.
func (s *Specification) Validate() error {
	if len(s.States) == 0 {
		return SpecErrorf(KindEmpty, s.ID, "no states declared")
	}
	if err := CheckVersion(s.Version); err != nil {
		return err
	}
	events, err := s.EventSet()
	if err != nil {
		return err
	}

	entities := make(map[string]struct{}, len(s.States))
	for _, st := range s.States {
		if strings.TrimSpace(st.Name) == "" {
			return SpecErrorf(KindInvalidName, st.Name, "state name cannot be empty")
		}
		if _, dup := entities[st.Name]; dup {
			return SpecErrorf(KindDuplicateState, st.Name, "state declared twice")
		}
		entities[st.Name] = struct{}{}
	}

	if _, err := s.InitialState(); err != nil {
		return err
	}

	for _, st := range s.States {
		seen := make(map[string]struct{}, len(st.Transitions))
		for _, tr := range st.Transitions {
			name := tr.EntityName(st.Name)
			switch {
			case tr.On == "":
				return SpecErrorf(KindUnknownEvent, name, "transition has no trigger")
			case tr.IsDefault():
			default:
				if _, ok := events.Lookup(tr.On); !ok {
					return SpecErrorf(KindUnknownEvent, name, "event %q is not declared", tr.On)
				}
			}
			if _, dup := seen[tr.On]; dup {
				if tr.IsDefault() {
					return SpecErrorf(KindDuplicateDefault, st.Name, "state has more than one default transition")
				}
				return SpecErrorf(KindDuplicateTransition, name, "state %q already has a transition on %q", st.Name, tr.On)
			}
			seen[tr.On] = struct{}{}

			if _, dup := entities[name]; dup {
				return SpecErrorf(KindDuplicateName, name, "entity name already used")
			}
			entities[name] = struct{}{}

			if _, isExpr := expr.Template(tr.Target); isExpr {
				continue
			}
			if tr.Target == "" {
				return SpecErrorf(KindUnknownTarget, name, "transition has no target")
			}
			if !s.hasState(tr.Target) {
				return SpecErrorf(KindUnknownTarget, name, "target %q is not a declared state", tr.Target)
			}
		}
	}
	return nil
}

// hasState reports whether name is a declared state.
func (s *Specification) hasState(name string) bool {
	for _, st := range s.States {
		if st.Name == name {
			return true
		}
	}
	return false
}

// CheckRequired verifies init holds every key in keys.
func CheckRequired(entity string, keys []string, init Initializer) error {
	for _, k := range keys {
		if _, ok := init[k]; !ok {
			return SpecErrorf(KindMissingInitializerKey, entity, "key %q is required", k)
		}
	}
	return nil
}

// CheckInitializers verifies every declared required key against inits.
func (s *Specification) CheckInitializers(inits Initializers) error {
	for _, st := range s.States {
		if err := CheckRequired(st.Name, st.Requires, inits[st.Name]); err != nil {
			return err
		}
		for _, tr := range st.Transitions {
			name := tr.EntityName(st.Name)
			if err := CheckRequired(name, tr.Requires, inits[name]); err != nil {
				return err
			}
		}
	}
	return nil
}
