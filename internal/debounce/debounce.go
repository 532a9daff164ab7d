// Package debounce delays delivery of a value until its source has been quiet
// for a fixed period. Only the latest value triggered within the period is
// delivered.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delivers the most recent triggered value to fn once no new value
// has arrived for the configured delay. It is safe for concurrent use; fn
// must not call Flush or Stop.
type Debouncer[T any] struct {
	mu      sync.Mutex
	idle    *sync.Cond
	delay   time.Duration
	fn      func(T)
	timer   *time.Timer
	pending T
	gen     uint64
	active  int
	armed   bool
	stopped bool
}

// New returns a Debouncer calling fn after delay of inactivity. A non-positive
// delay delivers synchronously on Trigger.
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	d := &Debouncer[T]{delay: delay, fn: fn}
	d.idle = sync.NewCond(&d.mu)
	return d
}

// Trigger records value and restarts the quiet period.
func (d *Debouncer[T]) Trigger(value T) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.delay <= 0 {
		d.active++
		d.mu.Unlock()
		d.deliver(value)
		return
	}

	d.pending = value
	d.armed = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
	}
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
	d.mu.Unlock()
}

// Flush delivers a pending value immediately and returns once every delivery
// already in progress has finished. It reports whether a value was delivered.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	armed := d.armed
	if armed {
		value := d.take()
		d.active++
		d.mu.Unlock()
		d.deliver(value)
		d.mu.Lock()
	}
	d.waitIdle()
	d.mu.Unlock()
	return armed
}

// Stop discards any pending value and waits for deliveries in progress. Later
// Triggers are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.take()
	d.waitIdle()
}

// fire delivers the value armed by generation gen; a timer superseded by a
// later Trigger is ignored.
func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if !d.armed || d.gen != gen {
		d.mu.Unlock()
		return
	}
	value := d.take()
	d.active++
	d.mu.Unlock()

	d.deliver(value)
}

// deliver runs fn outside the lock; the caller has counted it in d.active.
func (d *Debouncer[T]) deliver(value T) {
	defer func() {
		d.mu.Lock()
		d.active--
		if d.active == 0 {
			d.idle.Broadcast()
		}
		d.mu.Unlock()
	}()
	d.fn(value)
}

// waitIdle blocks until no delivery is running; d.mu must be held.
func (d *Debouncer[T]) waitIdle() {
	for d.active > 0 {
		d.idle.Wait()
	}
}

// take clears the pending state; d.mu must be held.
func (d *Debouncer[T]) take() T {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	value := d.pending
	var zero T
	d.pending = zero
	d.armed = false
	return value
}
