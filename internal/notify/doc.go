// Package notify owns the change-notification capability of bindable objects.
//
// Ownership boundary:
// - subscribe / unsubscribe / notify for named property changes
// - equality-suppressed setters
// - derived (computed) property notifications
//
// Objects hold a *Notifier and expose it through Notifiable. Dispatch is
// synchronous and reentrant: a listener may cause further notifications
// before the outer Notify returns.
package notify
