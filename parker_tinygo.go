// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build tinygo && !cortexm

package coop

// DefaultParker returns a [SpinParker]; there is no portable sleep
// instruction outside Cortex-M.
func DefaultParker() Parker {
	return &SpinParker{}
}
