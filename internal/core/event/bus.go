package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus owned by one encounter. Events emitted
// during a tick accumulate in the back buffer; Flush (run in the output phase)
// swaps buffers and delivers them to subscribers in emission order.
//
// Emit and Flush are called from the simulation goroutine only. Subscribe and
// Cancel may be called from any goroutine.
type Bus struct {
	mu       sync.Mutex // guards handlers and nextID
	front    []queued
	back     []queued
	handlers map[reflect.Type][]handler
	nextID   uint64
}

type queued struct {
	t  reflect.Type
	ev any
}

type handler struct {
	id uint64
	fn func(any)
}

// Subscription is the handle returned by Subscribe. Cancel detaches the
// handler; it is safe to call more than once.
type Subscription struct {
	bus  *Bus
	t    reflect.Type
	id   uint64
	once sync.Once
}

func NewBus() *Bus {
	return &Bus{
		front:    make([]queued, 0, 64),
		back:     make([]queued, 0, 64),
		handlers: make(map[reflect.Type][]handler),
	}
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Emit queues an event for delivery at the next Flush.
func Emit[T any](b *Bus, ev T) {
	b.back = append(b.back, queued{t: typeKey[T](), ev: ev})
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) *Subscription {
	t := typeKey[T]()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.handlers[t] = append(b.handlers[t], handler{
		id: id,
		fn: func(v any) { fn(v.(T)) },
	})
	return &Subscription{bus: b, t: t, id: id}
}

// Cancel removes the handler from the bus.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		b := s.bus
		b.mu.Lock()
		defer b.mu.Unlock()
		hs := b.handlers[s.t]
		for i, h := range hs {
			if h.id == s.id {
				b.handlers[s.t] = append(hs[:i:i], hs[i+1:]...)
				break
			}
		}
		if len(b.handlers[s.t]) == 0 {
			delete(b.handlers, s.t)
		}
	})
}

// Handlers returns the number of attached handlers across all event types.
func (b *Bus) Handlers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, hs := range b.handlers {
		n += len(hs)
	}
	return n
}

// SwapBuffers rotates back into front and resets the new back buffer.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front[:0]
}

// DispatchAll delivers the front buffer. Handlers are snapshotted per event,
// so a handler may cancel its own subscription while being called.
func (b *Bus) DispatchAll() {
	for _, q := range b.front {
		b.mu.Lock()
		hs := append([]handler(nil), b.handlers[q.t]...)
		b.mu.Unlock()
		for _, h := range hs {
			h.fn(q.ev)
		}
	}
	b.front = b.front[:0]
}

// Flush swaps and dispatches in one step.
func (b *Bus) Flush() {
	b.SwapBuffers()
	b.DispatchAll()
}

// Discard drops everything still queued. Used on teardown.
func (b *Bus) Discard() {
	b.front = b.front[:0]
	b.back = b.back[:0]
}
