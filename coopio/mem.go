// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coopio

import (
	"code.hybscloud.com/coop"
)

// SliceReader reads from an in-memory byte slice. It is always ready.
type SliceReader struct {
	b []byte
}

// NewSliceReader returns a Reader over b.
func NewSliceReader(b []byte) *SliceReader {
	return &SliceReader{b: b}
}

// PollRead implements [Reader].
func (r *SliceReader) PollRead(_ *coop.Context, p []byte) (int, error) {
	n := copy(p, r.b)
	r.b = r.b[n:]
	return n, nil
}

// Len returns the number of unread bytes.
func (r *SliceReader) Len() int { return len(r.b) }

type void struct{}

// Void returns a Writer that discards everything, always ready.
func Void() Writer { return void{} }

func (void) PollWrite(_ *coop.Context, p []byte) (int, error) { return len(p), nil }
func (void) PollFlush(*coop.Context) error                   { return nil }
func (void) PollClose(*coop.Context) error                   { return nil }

// Cursor writes into a fixed, non-growing buffer.
//
// PollWrite accepts as many bytes as fit; once the buffer is full it
// returns (0, nil). Cursor is also an io.Writer, for formatted output with
// fmt.Fprintf, in which case overflow is reported as [ErrOverflow].
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a Cursor writing into buf from its start.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// PollWrite implements [Writer].
func (c *Cursor) PollWrite(_ *coop.Context, p []byte) (int, error) {
	n := copy(c.buf[c.pos:], p)
	c.pos += n
	return n, nil
}

// PollFlush implements [Writer].
func (c *Cursor) PollFlush(*coop.Context) error { return nil }

// PollClose implements [Writer].
func (c *Cursor) PollClose(*coop.Context) error { return nil }

// Write copies p in full, or returns [ErrOverflow] without writing.
func (c *Cursor) Write(p []byte) (int, error) {
	if len(p) > len(c.buf)-c.pos {
		return 0, ErrOverflow
	}
	return c.PollWrite(nil, p)
}

// Bytes returns the written prefix of the buffer.
func (c *Cursor) Bytes() []byte { return c.buf[:c.pos] }

// Position returns the number of bytes written.
func (c *Cursor) Position() int { return c.pos }

// Reset rewinds the cursor to the start of its buffer.
func (c *Cursor) Reset() { c.pos = 0 }
