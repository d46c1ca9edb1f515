// Package property owns named property access for bindable objects.
//
// Ownership boundary:
// - descriptor shape (owner type, name, value type, accessors)
// - dotted path grammar and composition
// - per-process registry of (owner type, name) descriptors
//
// The registry never raises change notifications. Owners do that from
// their own setters, see package notify.
package property
