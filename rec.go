// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

import (
	"code.hybscloud.com/kont"
)

// Loop runs a recursive asynchronous computation (Cont-world).
// step returns Left(nextState) to continue or Right(result) to finish.
// Typical use is a driver loop body: read a line, answer it, repeat.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if left, ok := e.GetLeft(); ok {
			return Loop(left, step)
		}
		right, _ := e.GetRight()
		return kont.Pure(right)
	})
}

// Forever repeats body until it returns a non-nil error, and returns it.
func Forever(body func() kont.Eff[error]) kont.Eff[error] {
	return Loop(struct{}{}, func(struct{}) kont.Eff[kont.Either[struct{}, error]] {
		return kont.Map(body(), func(err error) kont.Either[struct{}, error] {
			if err != nil {
				return kont.Right[struct{}](err)
			}
			return kont.Left[struct{}, error](struct{}{})
		})
	})
}
