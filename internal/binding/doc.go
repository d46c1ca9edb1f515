// Package binding owns the live link between two bound properties.
//
// Ownership boundary:
// - eager path and converter resolution at construction
// - initial source -> target synchronization
// - propagation in both directions, settled by equality suppression
// - explicit detach and grouped teardown
//
// Lifecycle:
// - Bind -> Attached -> Detach -> Detached
//
// - failures are reported by Bind before any subscription exists
//
// - a binding never owns its endpoints; callers detach before discarding them
package binding
