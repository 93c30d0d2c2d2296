package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus(t *testing.T) {
	bus := NewBus()
	var got []string

	unsubA := bus.OnExternalStateChanged(func(evt Event) { got = append(got, "a:"+string(evt)) })
	bus.OnExternalStateChanged(func(evt Event) { got = append(got, "b:"+string(evt)) })

	bus.Notify(EventAdminGradeChanged)
	assert.Equal(t, []string{"a:admin_grade_changed", "b:admin_grade_changed"}, got, "subscription order")

	got = nil
	unsubA()
	unsubA() // idempotent
	bus.Notify(EventSessionChanged)
	assert.Equal(t, []string{"b:session_changed"}, got)
}

func TestBus_SubscribeFromCallback(t *testing.T) {
	bus := NewBus()
	var calls int
	bus.OnExternalStateChanged(func(Event) {
		calls++
		bus.OnExternalStateChanged(func(Event) { calls++ })
	})

	bus.Notify(EventAdminGradeChanged)
	assert.Equal(t, 1, calls, "subscribers added during a notification wait for the next one")
	bus.Notify(EventAdminGradeChanged)
	assert.Equal(t, 3, calls)
}
