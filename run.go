// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

// BlockOn drives root to completion on the calling goroutine and returns
// its value.
//
// Each iteration polls root once. When root is not ready, the loop parks on
// the executor's wait primitive and re-polls only after the Waker has been
// signalled; wakes that find the Waker clear park again without polling.
// Errors are part of T; BlockOn itself only fails by panicking on protocol
// misuse (double poll, re-entrant BlockOn, closed executor).
func BlockOn[T any](ex *Executor, root Future[T]) T {
	if ex.closed {
		panic(panicExecutorClosed)
	}
	w := &ex.waker
	if !w.bind() {
		panic(panicReentrantBlockOn)
	}
	defer w.unbind()

	// A stale notification from before this run carries no information
	// about root: its first poll examines all state anyway.
	w.flag.testAndClear()

	ex.stats = Stats{}
	if ex.logger != nil {
		ex.logger.Debug("coop: run started")
	}
	cx := Context{waker: w}
	for {
		ex.stats.Polls++
		if v, ok := root.Poll(&cx); ok {
			if ex.logger != nil {
				ex.logger.Debug("coop: run finished",
					"polls", ex.stats.Polls,
					"parks", ex.stats.Parks,
					"spurious", ex.stats.Spurious)
			}
			return v
		}
		for {
			w.parker.Park()
			ex.stats.Parks++
			if w.flag.testAndClear() {
				break
			}
			ex.stats.Spurious++
			if ex.logger != nil {
				ex.logger.Debug("coop: spurious wake", "parks", ex.stats.Parks)
			}
		}
	}
}
