// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coopio

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/coop"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// Pipe is a bounded byte FIFO between an interrupt handler and the driver
// loop, modelled on a UART data register.
//
// A Pipe is single-producer single-consumer. As a receive FIFO the
// interrupt handler calls Feed and the loop reads it as a [Reader]; as a
// transmit FIFO the loop writes it as a [Writer] and the interrupt handler
// calls Drain. CloseWrite marks the end of input.
type Pipe struct {
	q        lfq.SPSC[byte]
	readable coop.WakerSlot
	writable coop.WakerSlot
	limit    uint32
	enq, deq atomix.Uint32 // byte counters; equal when empty
	closed   atomix.Uint32
}

// NewPipe returns an empty pipe holding up to capacity bytes.
// It panics if capacity is less than 1.
func NewPipe(capacity int) *Pipe {
	if capacity < 1 {
		panic(panicPipeCapacity)
	}
	p := &Pipe{limit: uint32(capacity)}
	p.q.Init(max(capacity, 2))
	return p
}

// Cap returns the capacity given to [NewPipe].
func (p *Pipe) Cap() int { return int(p.limit) }

// Feed enqueues as many bytes of b as fit and wakes the reader. Returns
// [ErrBufferFull] with the count accepted when not every byte fit, and
// coop.ErrClosed after CloseWrite. Safe from interrupt context.
func (p *Pipe) Feed(b []byte) (int, error) {
	if p.closed.LoadAcquire() != 0 {
		return 0, coop.ErrClosed
	}
	n := p.push(b)
	if n > 0 {
		p.readable.Wake()
	}
	if n < len(b) {
		return n, ErrBufferFull
	}
	return n, nil
}

// Drain dequeues up to len(b) bytes and wakes the writer. Safe from
// interrupt context.
func (p *Pipe) Drain(b []byte) int {
	n := p.pop(b)
	if n > 0 {
		p.writable.Wake()
	}
	return n
}

// CloseWrite marks the end of input. The reader drains the remaining bytes
// and then reads (0, nil). CloseWrite is idempotent.
func (p *Pipe) CloseWrite() {
	if p.closed.CompareAndSwapAcqRel(0, 1) {
		p.readable.Wake()
	}
}

// Len returns the number of queued bytes.
func (p *Pipe) Len() int {
	return int(p.enq.LoadAcquire() - p.deq.LoadAcquire())
}

// PollRead implements [Reader].
func (p *Pipe) PollRead(cx *coop.Context, b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	p.readable.Register(cx.Waker())
	if n := p.pop(b); n > 0 {
		p.writable.Wake()
		return n, nil
	}
	if p.closed.LoadAcquire() != 0 {
		// Bytes fed before CloseWrite must not be lost.
		return p.pop(b), nil
	}
	return 0, iox.ErrWouldBlock
}

// PollWrite implements [Writer].
func (p *Pipe) PollWrite(cx *coop.Context, b []byte) (int, error) {
	if p.closed.LoadAcquire() != 0 {
		return 0, coop.ErrClosed
	}
	if len(b) == 0 {
		return 0, nil
	}
	p.writable.Register(cx.Waker())
	n := p.push(b)
	if n == 0 {
		return 0, iox.ErrWouldBlock
	}
	p.readable.Wake()
	return n, nil
}

// PollFlush implements [Writer]. It completes once the interrupt side has
// drained every queued byte.
func (p *Pipe) PollFlush(cx *coop.Context) error {
	p.writable.Register(cx.Waker())
	if p.Len() != 0 {
		return iox.ErrWouldBlock
	}
	return nil
}

// PollClose implements [Writer]: flush, then CloseWrite.
func (p *Pipe) PollClose(cx *coop.Context) error {
	if err := p.PollFlush(cx); err != nil {
		return err
	}
	p.CloseWrite()
	return nil
}

// push is the producer half. It accepts at most limit queued bytes even
// when the ring rounds up.
func (p *Pipe) push(b []byte) int {
	enq := p.enq.LoadRelaxed()
	room := int(p.limit - (enq - p.deq.LoadAcquire()))
	n := 0
	for n < len(b) && n < room {
		if err := p.q.Enqueue(&b[n]); err != nil {
			break
		}
		n++
	}
	p.enq.StoreRelease(enq + uint32(n))
	return n
}

func (p *Pipe) pop(b []byte) int {
	n := 0
	for n < len(b) {
		v, err := p.q.Dequeue()
		if err != nil {
			break
		}
		b[n] = v
		n++
	}
	p.deq.StoreRelease(p.deq.LoadRelaxed() + uint32(n))
	return n
}
