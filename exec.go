// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

import (
	"io"
	"log/slog"
)

// Executor is the driver loop. It owns the process-wide [Waker] and drives
// one root computation at a time with [BlockOn].
//
// Executor must be constructed with [New]. Only one Executor may be live
// per process; Close releases the claim. Drivers may hold the Waker for as
// long as the Executor is live.
type Executor struct {
	waker  Waker
	logger *slog.Logger
	closed bool
	stats  Stats
}

// Stats counts the driver loop events of the most recent [BlockOn] run.
type Stats struct {
	// Polls is the number of times the root future was polled.
	Polls uint64
	// Parks is the number of times the wait primitive returned.
	Parks uint64
	// Spurious is the number of wakes that found the Waker clear.
	Spurious uint64
}

// New claims the process-wide notification token and returns its Executor.
// Returns [ErrExecutorInUse] while another Executor is live.
func New(options ...Option) (*Executor, error) {
	var c executorConfig
	for _, option := range options {
		if err := option.applyOption(&c); err != nil {
			return nil, err
		}
	}
	if !claimExecutor() {
		return nil, ErrExecutorInUse
	}
	if c.parker == nil {
		c.parker = DefaultParker()
	}
	ex := &Executor{logger: c.logger}
	ex.waker.parker = c.parker
	return ex, nil
}

// Waker returns the executor's notification token.
func (ex *Executor) Waker() *Waker { return &ex.waker }

// Stats returns the counters of the most recent run.
func (ex *Executor) Stats() Stats { return ex.stats }

// Close releases the process-wide claim and the wait primitive, if it
// implements io.Closer. The Executor must not be used afterwards.
func (ex *Executor) Close() error {
	if ex.closed {
		return nil
	}
	ex.closed = true
	releaseExecutor()
	if c, ok := ex.waker.parker.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
