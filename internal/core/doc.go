// Package core is the execution tier: the construction contract that turns a
// Specification into State and Transition entities, the single-threaded Machine that
// dispatches events over the transition table, and SyncMachine, its mutex-guarded
// variant for concurrent producers.
//
// Dispatch is synchronous and processes one event to completion or failure. Calling
// Transit from inside a lifecycle hook of an in-flight Transit is a caller error: the
// Machine does not detect it and SyncMachine deadlocks on it.
package core
