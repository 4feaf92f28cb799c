// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux && !tinygo

package coop

import (
	"encoding/binary"
	"fmt"

	"code.hybscloud.com/atomix"
	"golang.org/x/sys/unix"
)

// EventfdParker parks the driver loop in a blocking read(2) on an eventfd.
// Unpark adds to the eventfd counter; a Park that follows consumes it and
// returns immediately, so no wake is lost.
//
// Close may race with Unpark from other goroutines: the descriptor is
// released only once no Unpark is writing to it.
type EventfdParker struct {
	fd    int
	state atomix.Uint32 // eventfdClosed | number of Unpark calls in flight
	freed atomix.Uint32
	buf   [8]byte
}

const eventfdClosed = 1 << 31

// NewEventfdParker creates the eventfd backing the parker.
func NewEventfdParker() (*EventfdParker, error) {
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("coop: eventfd: %w", err)
	}
	return &EventfdParker{fd: fd}, nil
}

// Park blocks until the eventfd counter is non-zero and resets it.
func (p *EventfdParker) Park() {
	if p.state.LoadAcquire()&eventfdClosed != 0 {
		panic(panicExecutorClosed)
	}
	for {
		_, err := unix.Read(p.fd, p.buf[:])
		if err != unix.EINTR {
			return
		}
	}
}

// Unpark increments the eventfd counter. Safe from any goroutine.
func (p *EventfdParker) Unpark() {
	defer p.release()
	if p.state.AddAcqRel(1)&eventfdClosed != 0 {
		return
	}
	var b [8]byte
	binary.NativeEndian.PutUint64(b[:], 1)
	for {
		_, err := unix.Write(p.fd, b[:])
		if err != unix.EINTR {
			return
		}
	}
}

// Close releases the eventfd. Later Unpark calls are ignored.
func (p *EventfdParker) Close() error {
	for {
		cur := p.state.LoadAcquire()
		if cur&eventfdClosed != 0 {
			return nil
		}
		if p.state.CompareAndSwapAcqRel(cur, cur|eventfdClosed) {
			if cur == 0 {
				return p.free()
			}
			return nil
		}
	}
}

// release ends one Unpark. The last one out after Close frees the fd.
func (p *EventfdParker) release() {
	if p.state.SubAcqRel(1) == eventfdClosed {
		p.free()
	}
}

func (p *EventfdParker) free() error {
	if !p.freed.CompareAndSwapAcqRel(0, 1) {
		return nil
	}
	return unix.Close(p.fd)
}

// DefaultParker returns the eventfd parker, falling back to [ChanParker]
// when the kernel refuses to create an eventfd.
func DefaultParker() Parker {
	if p, err := NewEventfdParker(); err == nil {
		return p
	}
	return NewChanParker()
}
