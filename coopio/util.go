// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coopio

import (
	"bytes"

	"code.hybscloud.com/coop"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// ioFuture is the shared completion guard of the utilities below.
type ioFuture struct {
	done bool
}

func (f *ioFuture) check() {
	if f.done {
		panic("coop: future polled after completion")
	}
}

type writeAll struct {
	ioFuture
	w   Writer
	buf []byte
}

// WriteAll writes all of buf to w.
// Completes with [ErrWriteZero] if w stops accepting data.
func WriteAll(w Writer, buf []byte) coop.Future[error] {
	return &writeAll{w: w, buf: buf}
}

func (f *writeAll) Poll(cx *coop.Context) (error, bool) {
	f.check()
	for len(f.buf) > 0 {
		n, err := f.w.PollWrite(cx, f.buf)
		if iox.IsWouldBlock(err) {
			return nil, false
		}
		if err == nil && n == 0 {
			err = ErrWriteZero
		}
		if err != nil {
			f.done = true
			return err, true
		}
		f.buf = f.buf[n:]
	}
	f.done = true
	return nil, true
}

type readExact struct {
	ioFuture
	r   Reader
	buf []byte
}

// ReadExact fills buf from r.
// Completes with [ErrUnexpectedEOF] if input ends first.
func ReadExact(r Reader, buf []byte) coop.Future[error] {
	return &readExact{r: r, buf: buf}
}

func (f *readExact) Poll(cx *coop.Context) (error, bool) {
	f.check()
	for len(f.buf) > 0 {
		n, err := f.r.PollRead(cx, f.buf)
		if iox.IsWouldBlock(err) {
			return nil, false
		}
		if err == nil && n == 0 {
			err = ErrUnexpectedEOF
		}
		if err != nil {
			f.done = true
			return err, true
		}
		f.buf = f.buf[n:]
	}
	f.done = true
	return nil, true
}

type readUntil struct {
	ioFuture
	r     BufferedReader
	delim byte
	buf   []byte
	pos   int
}

// ReadUntil copies bytes from r into buf up to and including delim.
//
// It completes with Right(n) once delim has been copied or input has
// ended, n being the bytes copied. When buf fills without delim it
// completes with Left([ErrOverflow]); the rest of the line stays in r.
// I/O errors complete with Left(err).
func ReadUntil(r BufferedReader, delim byte, buf []byte) coop.Future[kont.Either[error, int]] {
	return &readUntil{r: r, delim: delim, buf: buf}
}

func (f *readUntil) Poll(cx *coop.Context) (kont.Either[error, int], bool) {
	f.check()
	for f.pos < len(f.buf) {
		avail, err := f.r.PollFillBuf(cx)
		if iox.IsWouldBlock(err) {
			return kont.Either[error, int]{}, false
		}
		if err != nil {
			return f.finish(kont.Left[error, int](err))
		}
		if len(avail) == 0 {
			return f.finish(kont.Right[error](f.pos))
		}
		room := f.buf[f.pos:]
		if len(avail) > len(room) {
			avail = avail[:len(room)]
		}
		if i := bytes.IndexByte(avail, f.delim); i >= 0 {
			f.pos += copy(room, avail[:i+1])
			f.r.Consume(i + 1)
			return f.finish(kont.Right[error](f.pos))
		}
		f.pos += copy(room, avail)
		f.r.Consume(len(avail))
	}
	return f.finish(kont.Left[error, int](ErrOverflow))
}

func (f *readUntil) finish(e kont.Either[error, int]) (kont.Either[error, int], bool) {
	f.done = true
	f.r, f.buf = nil, nil
	return e, true
}

type pollFuture struct {
	ioFuture
	poll func(cx *coop.Context) error
}

func (f *pollFuture) Poll(cx *coop.Context) (error, bool) {
	f.check()
	err := f.poll(cx)
	if iox.IsWouldBlock(err) {
		return nil, false
	}
	f.done = true
	return err, true
}

// Flush returns a future completing once w's PollFlush does.
func Flush(w Writer) coop.Future[error] {
	return &pollFuture{poll: w.PollFlush}
}

// Close returns a future completing once w's PollClose does.
func Close(w Writer) coop.Future[error] {
	return &pollFuture{poll: w.PollClose}
}

type copyFuture struct {
	ioFuture
	dst     Writer
	src     Reader
	buf     []byte
	pending []byte
	n       int64
	eof     bool
}

// Copy pumps src into dst through buf until src ends, then flushes dst.
// Completes with Right(bytes copied) or Left(err) on the first error.
func Copy(dst Writer, src Reader, buf []byte) coop.Future[kont.Either[error, int64]] {
	return &copyFuture{dst: dst, src: src, buf: buf}
}

func (f *copyFuture) Poll(cx *coop.Context) (kont.Either[error, int64], bool) {
	f.check()
	for {
		for len(f.pending) > 0 {
			n, err := f.dst.PollWrite(cx, f.pending)
			if iox.IsWouldBlock(err) {
				return kont.Either[error, int64]{}, false
			}
			if err == nil && n == 0 {
				err = ErrWriteZero
			}
			if err != nil {
				return f.finish(kont.Left[error, int64](err))
			}
			f.pending = f.pending[n:]
			f.n += int64(n)
		}
		if f.eof {
			err := f.dst.PollFlush(cx)
			if iox.IsWouldBlock(err) {
				return kont.Either[error, int64]{}, false
			}
			if err != nil {
				return f.finish(kont.Left[error, int64](err))
			}
			return f.finish(kont.Right[error](f.n))
		}
		n, err := f.src.PollRead(cx, f.buf)
		if iox.IsWouldBlock(err) {
			// Let buffered output drain while input is idle.
			if err := f.dst.PollFlush(cx); err != nil && !iox.IsWouldBlock(err) {
				return f.finish(kont.Left[error, int64](err))
			}
			return kont.Either[error, int64]{}, false
		}
		if err != nil {
			return f.finish(kont.Left[error, int64](err))
		}
		if n == 0 {
			f.eof = true
			continue
		}
		f.pending = f.buf[:n]
	}
}

func (f *copyFuture) finish(e kont.Either[error, int64]) (kont.Either[error, int64], bool) {
	f.done = true
	f.dst, f.src, f.buf, f.pending = nil, nil, nil, nil
	return e, true
}
