// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Step evaluates an effectful computation until its first suspension.
// Returns (result, nil) on completion, or (zero, suspension) if pending.
func Step[R any](m kont.Expr[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(m)
}

// Advance polls the future awaited by susp with cx.
//
// When the awaited future completes, the suspension is consumed and the
// computation advances to its next suspension or to completion. While the
// future is pending, Advance returns iox.ErrWouldBlock and susp unconsumed;
// retry it after the Waker of cx has been signalled.
//
// Advance panics if susp is not suspended on an [Await] operation.
func Advance[R any](cx *Context, susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	aw, ok := susp.Op().(awaiter)
	if !ok {
		panic(panicUnhandledEffect)
	}
	v, ok := aw.pollAwait(cx)
	if !ok {
		var zero R
		return zero, susp, iox.ErrWouldBlock
	}
	result, next := susp.Resume(v)
	return result, next, nil
}
