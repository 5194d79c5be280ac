// Package event provides a small publish/subscribe bus.
//
// A Bus is created once and handed to whoever publishes or listens; there is
// no process-wide instance.
//
//	bus := event.NewBus()
//	stop := bus.Listen(event.AuthChanged, func(p any) { ... })
//	defer stop()
//	bus.Fire(event.AuthChanged, sessionID)
package event

import (
	"sync"
)

// AuthChanged is published whenever a session's token or cached user is
// written or cleared. The payload is the session ID ("" for the CLI session).
const AuthChanged = "auth.changed"

// Handler is a function that receives an event payload.
type Handler func(payload any)

type listener struct {
	id uint64
	h  Handler
}

// Bus dispatches named events to registered handlers.
// The zero value is not usable; call NewBus. A nil *Bus drops every event.
type Bus struct {
	mu       sync.RWMutex
	next     uint64
	handlers map[string][]listener
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: map[string][]listener{}}
}

// Listen registers a handler for the given event name and returns a function
// that removes it again. Calling the returned function twice is harmless.
func (b *Bus) Listen(event string, handler Handler) (unsubscribe func()) {
	if b == nil {
		return func() {}
	}

	b.mu.Lock()
	b.next++
	id := b.next
	b.handlers[event] = append(b.handlers[event], listener{id: id, h: handler})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(event, id) })
	}
}

func (b *Bus) remove(event string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ls := b.handlers[event]
	for i, l := range ls {
		if l.id == id {
			b.handlers[event] = append(ls[:i:i], ls[i+1:]...)
			break
		}
	}
	if len(b.handlers[event]) == 0 {
		delete(b.handlers, event)
	}
}

func (b *Bus) snapshot(event string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ls := b.handlers[event]
	hs := make([]Handler, len(ls))
	for i, l := range ls {
		hs[i] = l.h
	}
	return hs
}

// Fire dispatches an event synchronously to all registered listeners, in
// registration order. Handlers may Listen or unsubscribe while being called.
func (b *Bus) Fire(event string, payload any) {
	if b == nil {
		return
	}
	for _, h := range b.snapshot(event) {
		h(payload)
	}
}

// FireAsync dispatches the event to all listeners concurrently.
// It returns immediately without waiting for handlers to complete.
func (b *Bus) FireAsync(event string, payload any) {
	if b == nil {
		return
	}
	for _, h := range b.snapshot(event) {
		go h(payload)
	}
}

// Listeners reports how many handlers are registered for event.
func (b *Bus) Listeners(event string) int {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[event])
}

// Flush removes all listeners (useful in tests).
func (b *Bus) Flush() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = map[string][]listener{}
}
