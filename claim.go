// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

import "code.hybscloud.com/atomix"

// live is the process-wide executor claim. At most one Executor owns the
// notification token at a time.
var live atomix.Uint32

// claimExecutor takes the process-wide claim.
func claimExecutor() bool {
	return live.CompareAndSwapAcqRel(0, 1)
}

// releaseExecutor gives the claim back.
func releaseExecutor() {
	live.StoreRelease(0)
}
