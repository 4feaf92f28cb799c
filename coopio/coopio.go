// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package coopio provides poll-based byte I/O for coop driver loops.
//
// Every Poll method is non-blocking. The error iox.ErrWouldBlock means the
// operation is suspended: the callee has registered the Waker of cx and
// the caller should return pending. A read of (0, nil) is end of input and
// is never an error.
//
// The utilities ([WriteAll], [ReadExact], [ReadUntil], [Flush], [Close],
// [Copy]) turn these primitives into coop futures.
package coopio

import (
	"errors"

	"code.hybscloud.com/coop"
)

// Reader is a poll-based byte source.
type Reader interface {
	// PollRead reads up to len(p) bytes into p. Returns iox.ErrWouldBlock
	// while no data is available, and (0, nil) at end of input.
	PollRead(cx *coop.Context, p []byte) (n int, err error)
}

// Writer is a poll-based byte sink.
type Writer interface {
	// PollWrite writes up to len(p) bytes from p. A return of (0, nil)
	// means the writer can accept no more data.
	PollWrite(cx *coop.Context, p []byte) (n int, err error)
	// PollFlush completes once all written data has reached its
	// destination.
	PollFlush(cx *coop.Context) error
	// PollClose flushes and closes the writer.
	PollClose(cx *coop.Context) error
}

// BufferedReader is a Reader with an internal buffer that can be scanned
// without copying.
type BufferedReader interface {
	Reader
	// PollFillBuf returns the buffered data, reading more if the buffer
	// is empty. An empty slice with a nil error is end of input.
	PollFillBuf(cx *coop.Context) ([]byte, error)
	// Consume marks n bytes of the buffered data as used.
	Consume(n int)
}

var (
	// ErrUnexpectedEOF is returned by [ReadExact] when input ends before
	// the buffer is filled.
	ErrUnexpectedEOF = errors.New("coopio: unexpected end of input")

	// ErrWriteZero is returned by [WriteAll] when the writer accepts no
	// more data.
	ErrWriteZero = errors.New("coopio: write returned zero bytes")

	// ErrBufferFull is returned by [Pipe.Feed] when not every byte fit.
	ErrBufferFull = errors.New("coopio: buffer full")

	// ErrOverflow is returned by [ReadUntil] when the buffer fills before
	// the delimiter is found, and by [Cursor.Write] when the cursor has no
	// room for the whole input.
	ErrOverflow = errors.New("coopio: buffer overflow")
)

const (
	panicConsume      = "coopio: consume exceeds buffered data"
	panicPipeCapacity = "coopio: pipe capacity must be at least 1"
)
