// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// Queue is a bounded lock-free channel between interrupt context and the
// driver loop, backed by a single-producer single-consumer queue.
//
// Interrupt side: Push and Pop never block and return iox.ErrWouldBlock at
// the capacity boundary. Loop side: PollNext consumes items pushed by the
// interrupt handler (a receive FIFO), and the [Sink] methods produce items
// the interrupt handler pops (a transmit FIFO).
//
// A Queue has exactly one producer and one consumer. Use it either as a
// receive FIFO (Push + PollNext) or as a transmit FIFO (Sink + Pop).
type Queue[T any] struct {
	q        lfq.SPSC[T]
	limit    uint32
	enq, deq atomix.Uint32 // item counters; enq-deq is the queue length
	recv     WakerSlot     // loop consumer waiting for items
	send     WakerSlot     // loop producer waiting for space
	closed   atomix.Uint32
	ended   bool
	pending T
	held    bool
}

// NewQueue returns an empty queue holding up to capacity items.
// It panics if capacity is less than 1.
func NewQueue[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		panic(panicQueueCapacity)
	}
	q := &Queue[T]{limit: uint32(capacity)}
	q.q.Init(max(capacity, 2))
	return q
}

// Cap returns the capacity given to [NewQueue].
func (q *Queue[T]) Cap() int { return int(q.limit) }

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	return int(q.enq.LoadAcquire() - q.deq.LoadAcquire())
}

// enqueue is the producer half. The ring may be larger than limit, so the
// bound is checked against the counters first.
func (q *Queue[T]) enqueue(v *T) error {
	n := q.enq.LoadRelaxed()
	if n-q.deq.LoadAcquire() >= q.limit {
		return iox.ErrWouldBlock
	}
	if err := q.q.Enqueue(v); err != nil {
		return err
	}
	q.enq.StoreRelease(n + 1)
	return nil
}

// dequeue is the consumer half.
func (q *Queue[T]) dequeue() (T, error) {
	v, err := q.q.Dequeue()
	if err == nil {
		q.deq.StoreRelease(q.deq.LoadRelaxed() + 1)
	}
	return v, err
}

// Push enqueues v and wakes the loop consumer.
// Returns iox.ErrWouldBlock when full and [ErrClosed] after Close.
func (q *Queue[T]) Push(v T) error {
	if q.closed.LoadAcquire() != 0 {
		return ErrClosed
	}
	if err := q.enqueue(&v); err != nil {
		return err
	}
	q.recv.Wake()
	return nil
}

// Pop dequeues the oldest item and wakes a loop producer waiting for space.
// Returns iox.ErrWouldBlock when empty.
func (q *Queue[T]) Pop() (T, error) {
	v, err := q.dequeue()
	if err != nil {
		return v, err
	}
	q.send.Wake()
	return v, nil
}

// Close marks the queue closed. The consumer drains the remaining items and
// then observes the end of the stream. Close is idempotent.
func (q *Queue[T]) Close() {
	if q.closed.CompareAndSwapAcqRel(0, 1) {
		q.recv.Wake()
	}
}

// Closed reports whether Close has been called.
func (q *Queue[T]) Closed() bool {
	return q.closed.LoadAcquire() != 0
}

// PollNext implements [Stream] for the loop consumer.
func (q *Queue[T]) PollNext(cx *Context) (T, Status) {
	if q.ended {
		panic(panicStreamAfterEnd)
	}
	q.recv.Register(cx.Waker())
	v, err := q.dequeue()
	if err == nil {
		q.send.Wake()
		return v, Produced
	}
	if q.closed.LoadAcquire() != 0 {
		// Items pushed before Close must not be lost.
		if v, err = q.dequeue(); err == nil {
			return v, Produced
		}
		q.ended = true
		return v, Ended
	}
	return v, Pending
}

// PollReady implements [Sink]. It reports ready once the item held back by
// a full queue has been enqueued.
func (q *Queue[T]) PollReady(cx *Context) (bool, error) {
	return q.drain(cx), nil
}

// StartSend implements [Sink]. The item is enqueued immediately, or held
// until the interrupt side makes room.
func (q *Queue[T]) StartSend(item T) error {
	if q.held {
		panic(panicSendNotReady)
	}
	if q.closed.LoadAcquire() != 0 {
		return ErrClosed
	}
	if err := q.enqueue(&item); err != nil {
		if !iox.IsWouldBlock(err) {
			return err
		}
		q.pending, q.held = item, true
	}
	return nil
}

// PollFlush implements [Sink]. Items are visible to the interrupt side as
// soon as they are enqueued, so flushing only waits for a held item.
func (q *Queue[T]) PollFlush(cx *Context) (bool, error) {
	return q.drain(cx), nil
}

// PollClose implements [Sink]. It enqueues the held item, if any, then
// closes the queue. Later calls report closed immediately.
func (q *Queue[T]) PollClose(cx *Context) (bool, error) {
	if !q.drain(cx) {
		return false, nil
	}
	q.Close()
	return true, nil
}

// drain tries to enqueue the held item. Returns true when nothing is held.
func (q *Queue[T]) drain(cx *Context) bool {
	if !q.held {
		return true
	}
	q.send.Register(cx.Waker())
	if err := q.enqueue(&q.pending); err != nil {
		return false
	}
	var zero T
	q.pending, q.held = zero, false
	return true
}
