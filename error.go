// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

import "errors"

var (
	// ErrTimeout is carried as the Left value of [Timeout] when the
	// deadline future completes first.
	ErrTimeout = errors.New("coop: timed out")

	// ErrNoSpawn is returned by [Context.Spawn]. The substrate drives a
	// single root computation and rejects every spawn request.
	ErrNoSpawn = errors.New("coop: spawning is not supported")

	// ErrExecutorInUse is returned by [New] while another Executor is live.
	ErrExecutorInUse = errors.New("coop: an executor is already live in this process")

	// ErrClosed is returned when sending into a closed [Queue].
	ErrClosed = errors.New("coop: closed")
)

// Panic messages for protocol misuse. These are programming errors and are
// never recovered by this package.
const (
	panicPolledAfterCompletion = "coop: future polled after completion"
	panicStreamAfterEnd        = "coop: stream polled after end"
	panicWakerOwner            = "coop: waker cleared outside the driver loop"
	panicReentrantBlockOn      = "coop: BlockOn re-entered while a run is active"
	panicExecutorClosed        = "coop: executor is closed"
	panicUnhandledEffect       = "coop: unhandled effect in Async"
	panicInfiniteStreamEnded   = "coop: infinite stream ended"
	panicSendNotReady          = "coop: StartSend without readiness"
	panicQueueCapacity         = "coop: queue capacity must be at least 1"
)
