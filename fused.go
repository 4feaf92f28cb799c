// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

import (
	"code.hybscloud.com/kont"
)

// AwaitEff waits for f and returns its value.
// Equivalent to Perform(Await[T]{Future: f}) with the [Awaited] unwrapped.
func AwaitEff[T any](f Future[T]) kont.Eff[T] {
	return kont.Map(kont.Perform(Await[T]{Future: f}), unwrap[T])
}

// AwaitBind waits for f and passes its value to k.
// Fuses Perform(Await[T]{Future: f}) + Bind.
func AwaitBind[T, B any](f Future[T], k func(T) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Await[T]{Future: f}), func(a Awaited[T]) kont.Eff[B] {
		return k(a.Value)
	})
}

// AwaitThen waits for f, discards its value, and continues with next.
// Fuses Perform(Await[T]{Future: f}) + Then.
func AwaitThen[T, B any](f Future[T], next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Await[T]{Future: f}), next)
}

// YieldThen produces v on the enclosing [AsyncStream] and continues with
// next. Fuses Perform(Yield[T]{Value: v}) + Then.
func YieldThen[T, B any](v T, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Yield[T]{Value: v}), next)
}

// ExprAwaitBind is the Expr-world counterpart of [AwaitBind].
func ExprAwaitBind[T, B any](f Future[T], k func(T) kont.Expr[B]) kont.Expr[B] {
	return kont.ExprBind(kont.ExprPerform(Await[T]{Future: f}), func(a Awaited[T]) kont.Expr[B] {
		return k(a.Value)
	})
}

// ExprAwaitThen is the Expr-world counterpart of [AwaitThen].
func ExprAwaitThen[T, B any](f Future[T], next kont.Expr[B]) kont.Expr[B] {
	return kont.ExprThen(kont.ExprPerform(Await[T]{Future: f}), next)
}

func unwrap[T any](a Awaited[T]) T { return a.Value }
