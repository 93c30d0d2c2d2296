package core

import "sync"

// Event names a piece of server-side state that changed.
type Event string

const (
	// EventAdminGradeChanged is raised after an admin selected another grade to administer.
	EventAdminGradeChanged Event = "admin_grade_changed"
	// EventSessionChanged is raised after a login, a logout or a role override.
	EventSessionChanged Event = "session_changed"
)

// Bus tells unrelated components that server-side state changed.
// Subscribers are called synchronously, in subscription order.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

type subscription struct {
	id int
	fn func(Event)
}

func NewBus() *Bus {
	return &Bus{}
}

// OnExternalStateChanged registers fn and returns the function that removes it.
func (b *Bus) OnExternalStateChanged(fn func(Event)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subs {
		if sub.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Notify calls every subscriber with evt.
// The subscriber list is copied first so callbacks may subscribe or unsubscribe.
func (b *Bus) Notify(evt Event) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, sub := range subs {
		sub.fn(evt)
	}
}
