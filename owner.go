// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !tinygo

package coop

import "github.com/petermattis/goid"

// currentOwner identifies the calling goroutine for driver loop binding.
func currentOwner() uint64 {
	return uint64(goid.Get())
}
