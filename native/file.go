// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix && !tinygo

package native

import (
	"errors"
	"os"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/coop"
	"code.hybscloud.com/iox"
	"golang.org/x/sys/unix"
)

// File is a non-blocking file descriptor driven as a coopio Reader and
// Writer.
//
// A read or write that would block arms the readiness watcher for that
// direction and suspends. The watcher polls the descriptor in the kernel
// and wakes the loop once it is readable or writable.
type File struct {
	fd       int
	wake     [2]int // self-pipe: read end is polled, write end stops the watcher
	readable coop.WakerSlot
	writable coop.WakerSlot
	wantRead atomix.Uint32
	wantWrt  atomix.Uint32
	kick     chan struct{}
	done     chan struct{}
	closed   atomix.Uint32
}

// Stdin returns a File over the process's standard input.
func Stdin() (*File, error) { return NewFile(int(os.Stdin.Fd())) }

// Stdout returns a File over the process's standard output.
func Stdout() (*File, error) { return NewFile(int(os.Stdout.Fd())) }

// NewFile switches fd to non-blocking mode and starts its readiness
// watcher. The File does not own fd: Close stops the watcher and restores
// blocking mode but leaves fd open.
func NewFile(fd int) (*File, error) {
	f := &File{fd: fd, kick: make(chan struct{}, 1), done: make(chan struct{})}
	if err := unix.Pipe(f.wake[:]); err != nil {
		return nil, err
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(f.wake[0])
		unix.Close(f.wake[1])
		return nil, err
	}
	go f.watch()
	return f, nil
}

// Fd returns the underlying descriptor.
func (f *File) Fd() int { return f.fd }

// PollRead implements coopio.Reader.
func (f *File) PollRead(cx *coop.Context, p []byte) (int, error) {
	if f.closed.LoadAcquire() != 0 {
		return 0, os.ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	f.readable.Register(cx.Waker())
	for {
		n, err := unix.Read(f.fd, p)
		switch {
		case err == nil:
			return n, nil
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			f.arm(&f.wantRead)
			return 0, iox.ErrWouldBlock
		}
		return 0, &os.PathError{Op: "read", Path: "fd", Err: err}
	}
}

// PollWrite implements coopio.Writer.
func (f *File) PollWrite(cx *coop.Context, p []byte) (int, error) {
	if f.closed.LoadAcquire() != 0 {
		return 0, os.ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	f.writable.Register(cx.Waker())
	for {
		n, err := unix.Write(f.fd, p)
		switch {
		case err == nil:
			return n, nil
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			f.arm(&f.wantWrt)
			return 0, iox.ErrWouldBlock
		}
		return 0, &os.PathError{Op: "write", Path: "fd", Err: err}
	}
}

// PollFlush implements coopio.Writer. Writes go straight to the kernel.
func (f *File) PollFlush(*coop.Context) error { return nil }

// PollClose implements coopio.Writer. The descriptor stays open.
func (f *File) PollClose(*coop.Context) error { return nil }

// Close stops the watcher and restores blocking mode. It is idempotent.
func (f *File) Close() error {
	if !f.closed.CompareAndSwapAcqRel(0, 1) {
		return nil
	}
	unix.Write(f.wake[1], []byte{1})
	close(f.done)
	return unix.SetNonblock(f.fd, false)
}

// arm records interest in one direction and kicks the watcher.
func (f *File) arm(want *atomix.Uint32) {
	want.StoreRelease(1)
	select {
	case f.kick <- struct{}{}:
	default:
	}
}

// watch is the interrupt handler. It waits for armed interest, polls the
// descriptor until a wanted direction is ready, and wakes that direction.
func (f *File) watch() {
	defer unix.Close(f.wake[0])
	defer unix.Close(f.wake[1])
	fds := make([]unix.PollFd, 2)
	for {
		select {
		case <-f.kick:
		case <-f.done:
			return
		}
		for {
			var events int16
			if f.wantRead.LoadAcquire() != 0 {
				events |= unix.POLLIN
			}
			if f.wantWrt.LoadAcquire() != 0 {
				events |= unix.POLLOUT
			}
			if events == 0 {
				break
			}
			fds[0] = unix.PollFd{Fd: int32(f.fd), Events: events}
			fds[1] = unix.PollFd{Fd: int32(f.wake[0]), Events: unix.POLLIN}
			if _, err := unix.Poll(fds, -1); err != nil {
				if errors.Is(err, unix.EINTR) {
					continue
				}
				// A failing descriptor is reported by the next read or write.
				f.fire(&f.wantRead, &f.readable)
				f.fire(&f.wantWrt, &f.writable)
				break
			}
			if fds[1].Revents != 0 {
				return
			}
			rev := fds[0].Revents
			if rev&(unix.POLLIN|unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 {
				f.fire(&f.wantRead, &f.readable)
			}
			if rev&(unix.POLLOUT|unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 {
				f.fire(&f.wantWrt, &f.writable)
			}
		}
	}
}

// fire clears armed interest and wakes the direction's waiter.
func (f *File) fire(want *atomix.Uint32, slot *coop.WakerSlot) {
	if want.SwapAcqRel(0) != 0 {
		slot.Wake()
	}
}
