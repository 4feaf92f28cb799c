// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop_test

import (
	"testing"

	"code.hybscloud.com/coop"
	"code.hybscloud.com/kont"
)

// BenchmarkBlockOnReady measures one driver loop run of a ready future.
func BenchmarkBlockOnReady(b *testing.B) {
	ex := newExecutor(b)
	b.ReportAllocs()
	for b.Loop() {
		coop.BlockOn(ex, coop.Ready(1))
	}
}

// BenchmarkBlockOnPendingOnce measures one park/notify cycle.
func BenchmarkBlockOnPendingOnce(b *testing.B) {
	ex := newExecutor(b)
	b.ReportAllocs()
	for b.Loop() {
		coop.BlockOn(ex, coop.PendingOnce(coop.Ready(1)))
	}
}

// BenchmarkWake measures the interrupt-side notification.
func BenchmarkWake(b *testing.B) {
	w := coop.NewWaker(coop.NewChanParker())
	b.ReportAllocs()
	for b.Loop() {
		w.Wake()
		w.TestAndClear()
	}
}

// BenchmarkThen3 measures a 3-step ready chain.
func BenchmarkThen3(b *testing.B) {
	ex := newExecutor(b)
	inc := func(v int) coop.Future[int] { return coop.Ready(v + 1) }
	b.ReportAllocs()
	for b.Loop() {
		coop.BlockOn(ex, coop.Then(coop.Then(coop.Ready(0), inc), inc))
	}
}

// BenchmarkAsyncAwait3 measures a 3-await kont computation.
func BenchmarkAsyncAwait3(b *testing.B) {
	ex := newExecutor(b)
	b.ReportAllocs()
	for b.Loop() {
		m := coop.AwaitBind(coop.Ready(1), func(a int) kont.Eff[int] {
			return coop.AwaitBind(coop.Ready(a), func(c int) kont.Eff[int] {
				return coop.AwaitBind(coop.Ready(c), func(d int) kont.Eff[int] {
					return kont.Pure(d)
				})
			})
		})
		coop.BlockOn(ex, coop.Async(m))
	}
}

// BenchmarkExprAwait3 measures the Expr-world counterpart.
func BenchmarkExprAwait3(b *testing.B) {
	ex := newExecutor(b)
	b.ReportAllocs()
	for b.Loop() {
		m := coop.ExprAwaitBind(coop.Ready(1), func(a int) kont.Expr[int] {
			return coop.ExprAwaitBind(coop.Ready(a), func(c int) kont.Expr[int] {
				return coop.ExprAwaitBind(coop.Ready(c), func(d int) kont.Expr[int] {
					return kont.ExprReturn(d)
				})
			})
		})
		coop.BlockOn(ex, coop.AsyncExpr(m))
	}
}

// BenchmarkForward16 measures pumping 16 items through a queue.
func BenchmarkForward16(b *testing.B) {
	skipRace(b)
	ex := newExecutor(b)
	items := make([]int, 16)
	b.ReportAllocs()
	for b.Loop() {
		q := coop.NewQueue[int](16)
		coop.BlockOn(ex, coop.Forward(coop.FromSlice(items), q))
	}
}
