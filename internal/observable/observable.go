// Package observable provides small reactive building blocks: derived values
// with push-based invalidation and pull-based evaluation, change emitters,
// and an identity-keyed memoization map.
package observable

import "sync"

// Derived is a memoized computed value. It is marked dirty by upstream change
// notifications and recomputes lazily on the next Get; it never recomputes
// eagerly on invalidation.
type Derived[T any] struct {
	mu      sync.Mutex
	compute func() T
	value   T
	dirty   bool
}

// NewDerived creates a derivation over compute. The derivation starts dirty,
// so the first Get evaluates compute.
func NewDerived[T any](compute func() T) *Derived[T] {
	return &Derived[T]{compute: compute, dirty: true}
}

// Get returns the current value, recomputing only if an invalidation
// happened since the last read.
func (d *Derived[T]) Get() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dirty {
		d.value = d.compute()
		d.dirty = false
	}
	return d.value
}

// Invalidate marks the value stale. The next Get recomputes.
func (d *Derived[T]) Invalidate() {
	d.mu.Lock()
	d.dirty = true
	d.mu.Unlock()
}

// Emitter is a minimal event source: subscribers are invoked synchronously,
// in subscription order, on every Fire. There is no unsubscribe; subscribers
// live as long as the emitter, matching the process-lifetime signal wiring
// this package exists for.
type Emitter[T any] struct {
	mu   sync.Mutex
	subs []func(T)
}

// Subscribe registers fn for all future events.
func (e *Emitter[T]) Subscribe(fn func(T)) {
	e.mu.Lock()
	e.subs = append(e.subs, fn)
	e.mu.Unlock()
}

// Fire delivers ev to every subscriber.
func (e *Emitter[T]) Fire(ev T) {
	e.mu.Lock()
	subs := make([]func(T), len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}
