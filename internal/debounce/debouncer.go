// Package debounce coalesces bursty per-key updates into a single
// emission per quiescent window. The key type is the caller's: the
// pipeline's OwnerAccountDebouncer keys by minor mint, not by account
// address, so writes to different pools of one minor mint coalesce into a
// single emission.
package debounce

import (
	"sync"
	"time"
)

// Emit is invoked once per key after window has elapsed with no further
// Push calls for that key, carrying the latest value seen during the
// window. Last-writer-wins is exact: no intermediate value is ever lost
// silently, only superseded.
type Emit[K comparable, V any] func(key K, value V)

type pending[V any] struct {
	value V
	timer *time.Timer
}

// Debouncer coalesces Push calls per key into one Emit call after the
// configured quiescent window.
type Debouncer[K comparable, V any] struct {
	mu      sync.Mutex
	window  time.Duration
	pending map[K]*pending[V]
	emit    Emit[K, V]
}

// New builds a Debouncer with the given window and emit callback.
func New[K comparable, V any](window time.Duration, emit Emit[K, V]) *Debouncer[K, V] {
	return &Debouncer[K, V]{
		window:  window,
		pending: make(map[K]*pending[V]),
		emit:    emit,
	}
}

// Push records value as the latest observation for key, (re)starting that
// key's quiescent window. Only the value seen when the window finally
// elapses without a further Push is handed to Emit.
func (d *Debouncer[K, V]) Push(key K, value V) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pending[key]; ok {
		p.value = value
		p.timer.Reset(d.window)
		return
	}

	p := &pending[V]{value: value}
	p.timer = time.AfterFunc(d.window, func() { d.fire(key) })
	d.pending[key] = p
}

func (d *Debouncer[K, V]) fire(key K) {
	d.mu.Lock()
	p, ok := d.pending[key]
	if !ok {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()

	d.emit(key, p.value)
}

// Flush immediately fires any pending key without waiting for its window,
// used on shutdown so no update is dropped silently.
func (d *Debouncer[K, V]) Flush() {
	d.mu.Lock()
	keys := make([]K, 0, len(d.pending))
	for k, p := range d.pending {
		p.timer.Stop()
		keys = append(keys, k)
	}
	values := make(map[K]V, len(keys))
	for _, k := range keys {
		values[k] = d.pending[k].value
		delete(d.pending, k)
	}
	d.mu.Unlock()

	for _, k := range keys {
		d.emit(k, values[k])
	}
}
