package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusDeliversOnFlushInOrder(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(e Notification) { got = append(got, e.Message) })
	Subscribe(b, func(e LevelUp) { got = append(got, "level") })

	Emit(b, Notification{Message: "a"})
	Emit(b, LevelUp{Level: 2})
	Emit(b, Notification{Message: "b"})
	assert.Empty(t, got, "nothing is delivered before flush")

	b.Flush()
	assert.Equal(t, []string{"a", "level", "b"}, got)

	b.Flush()
	assert.Len(t, got, 3, "events are delivered once")
}

func TestSubscriptionCancel(t *testing.T) {
	b := NewBus()
	calls := 0
	sub := Subscribe(b, func(Notification) { calls++ })
	assert.Equal(t, 1, b.Handlers())

	sub.Cancel()
	sub.Cancel()
	assert.Equal(t, 0, b.Handlers())

	Emit(b, Notification{})
	b.Flush()
	assert.Zero(t, calls)
}

func TestRepeatedEncountersDoNotLeakHandlers(t *testing.T) {
	b := NewBus()
	for i := 0; i < 100; i++ {
		s1 := Subscribe(b, func(DamageDealt) {})
		s2 := Subscribe(b, func(EntityDied) {})
		s1.Cancel()
		s2.Cancel()
	}
	assert.Zero(t, b.Handlers())
}

func TestHandlerMayCancelItself(t *testing.T) {
	b := NewBus()
	calls := 0
	var sub *Subscription
	sub = Subscribe(b, func(Notification) {
		calls++
		sub.Cancel()
	})
	Emit(b, Notification{})
	Emit(b, Notification{})
	b.Flush()
	assert.Equal(t, 1, calls)
}

func TestDiscardDropsQueued(t *testing.T) {
	b := NewBus()
	calls := 0
	Subscribe(b, func(Notification) { calls++ })
	Emit(b, Notification{})
	b.Discard()
	b.Flush()
	assert.Zero(t, calls)
}
