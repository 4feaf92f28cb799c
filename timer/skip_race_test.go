// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package timer_test

import "testing"

// skipRace skips tests that share memory through atomix or the lfq SPSC
// queue across goroutines. atomix operations are assembly the race
// detector does not instrument, so the happens-before edges they carry
// are invisible to it and it reports false positives.
func skipRace(tb testing.TB) {
	tb.Helper()
	tb.Skip("skip: atomix and SPSC ordering is invisible to the race detector")
}
