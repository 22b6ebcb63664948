// Copyright © 2025 Charloom contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: event/bus.go
// Summary: Name-keyed publish/subscribe bus with per-listener fault isolation.
// Usage: Carries animation lifecycle and frame events between core and host.

package event

import (
	"log"
	"sync"
)

// Handler receives the payload passed to Emit.
type Handler func(data any)

type registration struct {
	id int
	fn Handler
}

// Bus fans events out to listeners registered by event name. Delivery is
// in-order and fail-soft: a listener that panics is logged and skipped, the
// remaining listeners still run, and the panic never reaches the emitter.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[string][]registration
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]registration)}
}

// On registers a listener for the named event and returns its unsubscribe
// function. Unsubscribing twice is harmless.
func (b *Bus) On(name string, fn Handler) func() {
	if fn == nil {
		return func() {}
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[name] = append(b.handlers[name], registration{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		regs := b.handlers[name]
		for i, r := range regs {
			if r.id == id {
				b.handlers[name] = append(regs[:i], regs[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers data to every listener currently registered for the named
// event and returns the number of listeners invoked.
func (b *Bus) Emit(name string, data any) int {
	b.mu.RLock()
	regs := append([]registration(nil), b.handlers[name]...)
	b.mu.RUnlock()

	for _, r := range regs {
		b.deliver(name, r, data)
	}
	return len(regs)
}

func (b *Bus) deliver(name string, r registration, data any) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Event: listener for %q panicked: %v", name, rec)
		}
	}()
	r.fn(data)
}

// Off removes every listener registered for the named event.
func (b *Bus) Off(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.handlers, name)
}

// Clear removes every listener for every event.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = make(map[string][]registration)
}
