package notify

import (
	"slices"
	"sync"
)

// ChangeEvent names the property that changed on Source. It carries no
// value; listeners re-read through the property registry.
type ChangeEvent struct {
	Source   any
	Property string
}

// Listener receives change events.
type Listener func(ChangeEvent)

// Subscription identifies one registered listener. The zero value is never
// issued.
type Subscription uint64

// Notifiable is implemented by objects that can act as binding endpoints.
type Notifiable interface {
	Notifier() *Notifier
}

type entry struct {
	id       Subscription
	listener Listener
	active   bool
}

// Notifier dispatches change events for one owner object. The lock guards
// the listener and derivation tables only and is never held while a
// listener runs.
type Notifier struct {
	owner any

	mu        sync.Mutex
	next      Subscription
	listeners []*entry
	derived   map[string][]string
	deriving  map[string]bool
}

// New creates a notifier whose events report owner as their source.
func New(owner any) *Notifier {
	return &Notifier{
		owner:    owner,
		derived:  make(map[string][]string),
		deriving: make(map[string]bool),
	}
}

// Owner returns the object events are raised for.
func (n *Notifier) Owner() any { return n.owner }

// Subscribe registers l and returns its handle.
func (n *Notifier) Subscribe(l Listener) Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.next++
	n.listeners = append(n.listeners, &entry{id: n.next, listener: l, active: true})
	return n.next
}

// Unsubscribe removes the listener behind s. A listener removed during
// dispatch is not invoked for the rest of that dispatch. It reports
// whether s was subscribed.
func (n *Notifier) Unsubscribe(s Subscription) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, e := range n.listeners {
		if e.id == s {
			e.active = false
			n.listeners = slices.Delete(n.listeners, i, i+1)
			return true
		}
	}
	return false
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}

// Derive declares that name changes whenever any of deps changes.
// Self-dependencies are ignored.
func (n *Notifier) Derive(name string, deps ...string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, dep := range deps {
		if dep == name || slices.Contains(n.derived[dep], name) {
			continue
		}
		n.derived[dep] = append(n.derived[dep], name)
	}
}

// Notify raises a change event for name to every listener subscribed when
// the call started, then raises the properties derived from name.
func (n *Notifier) Notify(name string) {
	n.mu.Lock()
	snapshot := slices.Clone(n.listeners)
	derived := slices.Clone(n.derived[name])
	n.mu.Unlock()

	ev := ChangeEvent{Source: n.owner, Property: name}
	for _, e := range snapshot {
		n.mu.Lock()
		active := e.active
		n.mu.Unlock()
		if active {
			e.listener(ev)
		}
	}

	if len(derived) == 0 || !n.enterDerived(name) {
		return
	}
	defer n.leaveDerived(name)
	for _, d := range derived {
		if n.isDeriving(d) {
			continue
		}
		n.Notify(d)
	}
}

// enterDerived marks name as raising its derived properties so that
// derivation cycles (A from B, B from A) raise each name once.
func (n *Notifier) enterDerived(name string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.deriving[name] {
		return false
	}
	n.deriving[name] = true
	return true
}

func (n *Notifier) leaveDerived(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.deriving, name)
}

func (n *Notifier) isDeriving(name string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.deriving[name]
}
