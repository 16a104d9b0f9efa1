// Package observable provides a current-value holder with subscribers.
package observable

import "sync"

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Value holds the latest value of type T and notifies subscribers on every Set.
// It supports one writer and any number of concurrent readers. Subscribers must
// not call Set on the same Value from inside their callback.
type Value[T any] struct {
	mu     sync.RWMutex
	emit   sync.Mutex // serializes deliveries so subscribers see values in order
	value  T
	nextID uint64
	subs   []subscriber[T]
}

// New creates a Value holding initial.
func New[T any](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Set stores val and delivers it to every subscriber.
func (v *Value[T]) Set(val T) {
	v.emit.Lock()
	defer v.emit.Unlock()

	v.mu.Lock()
	v.value = val
	subs := make([]subscriber[T], len(v.subs))
	copy(subs, v.subs)
	v.mu.Unlock()

	for _, s := range subs {
		s.fn(val)
	}
}

// Update applies fn to the current value and stores the result, holding the
// write side for the whole read-modify-write. It reports whether fn changed
// anything; subscribers are only notified when it did.
func (v *Value[T]) Update(fn func(T) (T, bool)) bool {
	v.emit.Lock()
	defer v.emit.Unlock()

	v.mu.Lock()
	next, changed := fn(v.value)
	if !changed {
		v.mu.Unlock()
		return false
	}
	v.value = next
	subs := make([]subscriber[T], len(v.subs))
	copy(subs, v.subs)
	v.mu.Unlock()

	for _, s := range subs {
		s.fn(next)
	}
	return true
}

// Subscribe registers fn, calls it immediately with the current value, and
// then again after every Set. The returned func removes the subscription.
func (v *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	v.emit.Lock()
	defer v.emit.Unlock()

	v.mu.Lock()
	v.nextID++
	id := v.nextID
	v.subs = append(v.subs, subscriber[T]{id: id, fn: fn})
	current := v.value
	v.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() { v.remove(id) })
	}
}

func (v *Value[T]) remove(id uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, s := range v.subs {
		if s.id == id {
			v.subs = append(v.subs[:i:i], v.subs[i+1:]...)
			return
		}
	}
}

// Subscribers returns the number of active subscriptions.
func (v *Value[T]) Subscribers() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.subs)
}
