// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

// Package event implements the typed single-parameter publisher used
// throughout saturn's containers and controllers. It is generalized
// from gini's habit of a small mutex-guarded dispatcher struct with a
// fixed callback slot (internal/xo's Ctl, crisp's request/response
// loop) into a reusable multi-subscriber bus.
package event

import "sync"

// Handler receives one event value.
type Handler[T any] func(T)

// Token is returned by Subscribe; Release is the only legitimate way to
// tear down a subscription (spec §4.1 "a handler must not outlive its
// subscriber").
type Token struct {
	release func()
}

// Release removes the associated handler. Calling Release more than
// once is a no-op.
func (t *Token) Release() {
	if t == nil || t.release == nil {
		return
	}
	t.release()
	t.release = nil
}

type entry[T any] struct {
	id int
	fn Handler[T]
}

// Bus is a typed publisher supporting zero or more handlers, dispatched
// in subscription order.
type Bus[T any] struct {
	mu       sync.Mutex
	handlers []entry[T]
	nextID   int
}

// New creates an empty bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers fn and returns a Token that removes it on
// Release. Subscriptions made during a Fire take effect on the next
// Fire, never the one in progress (spec §4.1).
func (b *Bus[T]) Subscribe(fn Handler[T]) *Token {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers = append(b.handlers, entry[T]{id: id, fn: fn})
	b.mu.Unlock()

	return &Token{release: func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, e := range b.handlers {
			if e.id == id {
				b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
				return
			}
		}
	}}
}

// Fire invokes every currently subscribed handler, in subscription
// order, with x. Fire snapshots the handler list before dispatch so
// that a handler unsubscribing itself (or another handler) mid-dispatch
// does not invalidate the in-flight iteration, and reentrant Fire calls
// are safe (spec §4.1).
func (b *Bus[T]) Fire(x T) {
	b.mu.Lock()
	snapshot := make([]entry[T], len(b.handlers))
	copy(snapshot, b.handlers)
	b.mu.Unlock()

	for _, e := range snapshot {
		e.fn(x)
	}
}

// Len returns the number of live subscriptions, for tests.
func (b *Bus[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}
