// Package primitives defines the normalized data model shared by every construction
// front-end and the execution core: event sets, events, the Specification with its
// state and transition entries, initializer maps and entity attributes.
//
// Core invariants:
//   - an EventSet is closed once built; event types outside it are never dispatched
//   - state names are unique and exactly one state is initial
//   - at most one transition per (state, event) and one default per state
//
// Specification errors are reported as *SpecError, which matches ErrSpecification.
package primitives
