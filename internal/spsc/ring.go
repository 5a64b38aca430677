// Package spsc provides a bounded lock-free FIFO for exactly one producer
// goroutine and one consumer goroutine. It links adjacent pipeline stages.
package spsc

import (
	"errors"
	"sync/atomic"
)

const cacheLineSize = 64

var ErrCapacity = errors.New("spsc: capacity must be a power of two >= 2")

// Ring is a single-producer single-consumer ring buffer. The element type
// must be copyable by assignment; slots are stored by value so no allocation
// happens on push or pop.
//
// head is written only by the producer, tail only by the consumer. The two
// counters are monotonically increasing; the slot index is counter & mask.
// Padding keeps them on separate cache lines so the producer and consumer
// cores do not invalidate each other's line on every operation.
type Ring[T any] struct {
	buf  []T
	mask uint64

	_    [cacheLineSize]byte
	head atomic.Uint64
	_    [cacheLineSize - 8]byte
	tail atomic.Uint64
	_    [cacheLineSize - 8]byte
}

// New allocates a ring with the given capacity. Capacity must be a power of
// two and at least 2; usable slots are capacity-1 (one slot distinguishes
// full from empty).
func New[T any](capacity int) (*Ring[T], error) {
	if capacity < 2 || capacity&(capacity-1) != 0 {
		return nil, ErrCapacity
	}
	return &Ring[T]{
		buf:  make([]T, capacity),
		mask: uint64(capacity - 1),
	}, nil
}

// MustNew is New for capacities fixed at wiring time.
func MustNew[T any](capacity int) *Ring[T] {
	r, err := New[T](capacity)
	if err != nil {
		panic(err)
	}
	return r
}

// TryPush writes v at the head slot and advances head. Returns false when the
// ring is full. Producer goroutine only.
func (r *Ring[T]) TryPush(v T) bool {
	head := r.head.Load()
	tail := r.tail.Load() // acquire: pairs with the consumer's tail store
	if head-tail >= r.mask {
		return false
	}
	r.buf[head&r.mask] = v
	r.head.Store(head + 1) // release: publishes the slot write
	return true
}

// TryPop reads the tail slot and advances tail. Returns false when the ring
// is empty. Consumer goroutine only.
func (r *Ring[T]) TryPop() (T, bool) {
	tail := r.tail.Load()
	head := r.head.Load() // acquire: pairs with the producer's head store
	if head == tail {
		var zero T
		return zero, false
	}
	v := r.buf[tail&r.mask]
	r.tail.Store(tail + 1) // release: frees the slot
	return v, true
}

// Len is an approximate count of queued elements.
func (r *Ring[T]) Len() int {
	return int(r.head.Load() - r.tail.Load())
}

// Empty is an approximate observer.
func (r *Ring[T]) Empty() bool {
	return r.Len() == 0
}

// Cap returns the usable slot count.
func (r *Ring[T]) Cap() int {
	return int(r.mask)
}
