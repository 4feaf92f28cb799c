// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

import (
	"code.hybscloud.com/kont"
)

// Await is the effect operation for waiting on a nested future.
// Perform(Await[T]{Future: f}) suspends the computation until f completes
// and resumes it with f's value wrapped in [Awaited].
type Await[T any] struct {
	kont.Phantom[Awaited[T]]
	Future Future[T]
}

// Awaited is the resume value of [Await]. The wrapper keeps nil interface
// results, such as a nil error, resumable.
type Awaited[T any] struct {
	Value T
}

// pollAwait polls the awaited future with the current context.
// Non-blocking: reports false while the future is pending.
func (a Await[T]) pollAwait(cx *Context) (kont.Resumed, bool) {
	v, ok := a.Future.Poll(cx)
	if !ok {
		return nil, false
	}
	return Awaited[T]{Value: v}, true
}

// awaiter is the structural interface for Await operations of any type.
type awaiter interface {
	pollAwait(cx *Context) (kont.Resumed, bool)
}

// Yield is the effect operation for producing a stream item.
// Perform(Yield[T]{Value: v}) hands v to the consumer of [AsyncStream] and
// resumes when the consumer polls for the next item.
type Yield[T any] struct {
	kont.Phantom[struct{}]
	Value T
}

// yieldResumed is the pre-boxed resume value for Yield, avoiding an
// allocation per produced item.
var yieldResumed kont.Resumed = struct{}{}
