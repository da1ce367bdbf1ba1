package core

import "go.uber.org/zap"

// Option applies configuration to Machine via functional options pattern.
type Option func(*Machine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithID overrides the generated machine instance ID.
func WithID(id string) Option {
	return func(m *Machine) {
		if id != "" {
			m.id = id
		}
	}
}

// WithStateFactory adds a StateFactory. Factories are tried in the order they are
// added, before the registry and the basic factory.
func WithStateFactory(f StateFactory) Option {
	return func(m *Machine) {
		m.stateFactories = append(m.stateFactories, f)
	}
}

// WithTransitionFactory adds a TransitionFactory, tried like WithStateFactory.
func WithTransitionFactory(f TransitionFactory) Option {
	return func(m *Machine) {
		m.transitionFactories = append(m.transitionFactories, f)
	}
}

// WithRegistry replaces DefaultRegistry as the kind registration table.
func WithRegistry(r *Registry) Option {
	return func(m *Machine) {
		if r != nil {
			m.registry = r
		}
	}
}

// WithObserver registers an Observer.
func WithObserver(o Observer) Option {
	return func(m *Machine) {
		m.observers = append(m.observers, o)
	}
}
