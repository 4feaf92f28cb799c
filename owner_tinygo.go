// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build tinygo

package coop

// currentOwner is constant on bare-metal targets: there is one thread of
// execution and interrupt handlers never clear the Waker.
func currentOwner() uint64 {
	return 1
}
