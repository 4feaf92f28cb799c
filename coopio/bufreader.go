// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coopio

import (
	"code.hybscloud.com/coop"
)

// BufReader adds a caller-provided buffer to a Reader.
//
// Buffered data is handed out before the underlying reader is polled
// again, so a delimiter scan over [BufReader.PollFillBuf] never copies
// more than once.
type BufReader struct {
	r           Reader
	buf         []byte
	left, right int
}

// NewBufReader returns a BufReader reading from r into buf.
// buf must not be empty.
func NewBufReader(r Reader, buf []byte) *BufReader {
	if len(buf) == 0 {
		panic("coopio: empty BufReader buffer")
	}
	return &BufReader{r: r, buf: buf}
}

// PollFillBuf implements [BufferedReader].
func (b *BufReader) PollFillBuf(cx *coop.Context) ([]byte, error) {
	if b.left < b.right {
		return b.buf[b.left:b.right], nil
	}
	b.left, b.right = 0, 0
	n, err := b.r.PollRead(cx, b.buf)
	if err != nil {
		return nil, err
	}
	b.right = n
	return b.buf[:n], nil
}

// Consume implements [BufferedReader]. It panics if n exceeds the
// buffered data.
func (b *BufReader) Consume(n int) {
	if n < 0 || n > b.right-b.left {
		panic(panicConsume)
	}
	b.left += n
	if b.left == b.right {
		b.left, b.right = 0, 0
	}
}

// PollRead implements [Reader]. It copies at most len(p) bytes of the
// buffered data.
func (b *BufReader) PollRead(cx *coop.Context, p []byte) (int, error) {
	avail, err := b.PollFillBuf(cx)
	if err != nil {
		return 0, err
	}
	n := copy(p, avail)
	b.Consume(n)
	return n, nil
}

// Buffered returns the number of bytes that can be consumed without
// polling the underlying reader.
func (b *BufReader) Buffered() int { return b.right - b.left }
