// Package fsmx builds flat finite-state machines from a declarative Specification.
// Specifications come from the fluent Builder, from the loader package or from
// code; custom State and Transition types are selected by kind through a Registry.
package fsmx

import (
	"github.com/comalice/fsmx/internal/core"
	"github.com/comalice/fsmx/internal/primitives"
)

type (
	Specification  = primitives.Specification
	StateSpec      = primitives.StateSpec
	TransitionSpec = primitives.TransitionSpec
	Initializer    = primitives.Initializer
	Initializers   = primitives.Initializers
	Attributes     = primitives.Attributes
	Event          = primitives.Event
	EventType      = primitives.EventType
	EventSet       = primitives.EventSet
	SpecError      = primitives.SpecError
	ErrorKind      = primitives.ErrorKind

	Machine               = core.Machine
	SyncMachine           = core.SyncMachine
	State                 = core.State
	Transition            = core.Transition
	BaseState             = core.BaseState
	BaseTransition        = core.BaseTransition
	Detacher              = core.Detacher
	Requirer              = core.Requirer
	StateFactory          = core.StateFactory
	TransitionFactory     = core.TransitionFactory
	StateFactoryFunc      = core.StateFactoryFunc
	TransitionFactoryFunc = core.TransitionFactoryFunc
	StateConstructor      = core.StateConstructor
	TransitionConstructor = core.TransitionConstructor
	Registry              = core.Registry
	Option                = core.Option
	Observer              = core.Observer
	TransitionRecord      = core.TransitionRecord
	RejectionRecord       = core.RejectionRecord
	InvalidEventError     = core.InvalidEventError
)

const (
	DefaultTrigger = primitives.DefaultTrigger
	SchemaVersion  = primitives.SchemaVersion
	BasicKind      = core.BasicKind
)

var (
	ErrSpecification      = primitives.ErrSpecification
	ErrInvalidEvent       = core.ErrInvalidEvent
	ErrNotInitialized     = core.ErrNotInitialized
	ErrAlreadyInitialized = core.ErrAlreadyInitialized
	ErrClosed             = core.ErrClosed
	ErrKindExists         = core.ErrKindExists
	ErrReservedKind       = core.ErrReservedKind

	// DefaultRegistry is consulted by every machine unless WithRegistry replaces it.
	DefaultRegistry = core.DefaultRegistry
)

// Construction.
var (
	Build     = core.Build
	New       = core.New
	BuildSync = core.BuildSync
	NewSync   = core.NewSync

	NewRegistry       = core.NewRegistry
	NewBaseState      = core.NewBaseState
	NewBaseTransition = core.NewBaseTransition
	NewEvent          = primitives.NewEvent
	IsInvalidEvent    = core.IsInvalidEvent
	IsKind            = primitives.IsKind
)

// Options.
var (
	WithLogger            = core.WithLogger
	WithID                = core.WithID
	WithObserver          = core.WithObserver
	WithRegistry          = core.WithRegistry
	WithStateFactory      = core.WithStateFactory
	WithTransitionFactory = core.WithTransitionFactory
)

// Specification error kinds.
const (
	KindEmpty                 = primitives.KindEmpty
	KindVersion               = primitives.KindVersion
	KindInvalidEvents         = primitives.KindInvalidEvents
	KindInvalidName           = primitives.KindInvalidName
	KindDuplicateState        = primitives.KindDuplicateState
	KindDuplicateName         = primitives.KindDuplicateName
	KindUnknownEvent          = primitives.KindUnknownEvent
	KindUnknownTarget         = primitives.KindUnknownTarget
	KindDuplicateTransition   = primitives.KindDuplicateTransition
	KindDuplicateDefault      = primitives.KindDuplicateDefault
	KindNoInitialState        = primitives.KindNoInitialState
	KindMultipleInitialStates = primitives.KindMultipleInitialStates
	KindMissingInitializerKey = primitives.KindMissingInitializerKey
	KindUnresolvedEntity      = primitives.KindUnresolvedEntity
	KindExpression            = primitives.KindExpression
	KindAttach                = primitives.KindAttach
	KindLifecycle             = primitives.KindLifecycle
)
