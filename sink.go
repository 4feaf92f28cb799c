// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

type forwardFuture[T any] struct {
	src      Stream[T]
	dst      Sink[T]
	item     T
	buffered bool
	srcEnded bool
	done     bool
}

// Forward pumps every item of src into dst, then closes dst.
//
// At most one item is in flight: an item taken from src is held until dst
// reports ready, and src is not advanced again until StartSend has
// resolved it. While src is pending, dst is flushed. The first error from
// dst completes the future with that error; dst is not closed in that case.
// A nil result means src ended and dst closed cleanly.
func Forward[T any](src Stream[T], dst Sink[T]) Future[error] {
	return &forwardFuture[T]{src: src, dst: dst}
}

func (f *forwardFuture[T]) Poll(cx *Context) (error, bool) {
	if f.done {
		panic(panicPolledAfterCompletion)
	}
	for {
		if f.buffered {
			ok, err := f.dst.PollReady(cx)
			if err != nil {
				return f.finish(err)
			}
			if !ok {
				return nil, false
			}
			item := f.item
			var zero T
			f.item, f.buffered = zero, false
			if err := f.dst.StartSend(item); err != nil {
				return f.finish(err)
			}
		}
		if f.srcEnded {
			ok, err := f.dst.PollClose(cx)
			if err != nil {
				return f.finish(err)
			}
			if !ok {
				return nil, false
			}
			return f.finish(nil)
		}
		v, st := f.src.PollNext(cx)
		switch st {
		case Produced:
			f.item, f.buffered = v, true
		case Ended:
			f.srcEnded = true
		default:
			if _, err := f.dst.PollFlush(cx); err != nil {
				return f.finish(err)
			}
			return nil, false
		}
	}
}

func (f *forwardFuture[T]) finish(err error) (error, bool) {
	f.done = true
	f.src, f.dst = nil, nil
	return err, true
}

type collectFuture[T any] struct {
	s     Stream[T]
	items []T
	done  bool
}

// Collect gathers every item of s until it ends.
func Collect[T any](s Stream[T]) Future[[]T] {
	return &collectFuture[T]{s: s}
}

func (c *collectFuture[T]) Poll(cx *Context) ([]T, bool) {
	if c.done {
		panic(panicPolledAfterCompletion)
	}
	for {
		v, st := c.s.PollNext(cx)
		switch st {
		case Produced:
			c.items = append(c.items, v)
		case Ended:
			c.done = true
			items := c.items
			c.items, c.s = nil, nil
			return items, true
		default:
			return nil, false
		}
	}
}
