// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

import (
	"errors"
	"log/slog"
)

type (
	// Option configures an [Executor]. See the `With*` prefixed functions.
	Option interface {
		applyOption(c *executorConfig) error
	}

	optionFunc func(c *executorConfig) error

	executorConfig struct {
		parker Parker       // see Waker.parker
		logger *slog.Logger // see Executor.logger
	}
)

var _ Option = optionFunc(nil)

// WithParker sets the wait primitive backing the executor's [Waker].
// Defaults to [DefaultParker].
func WithParker(p Parker) Option {
	return optionFunc(func(c *executorConfig) error {
		if p == nil {
			return errors.New("coop: parker must not be nil")
		}
		c.parker = p
		return nil
	})
}

// WithLogger enables debug logging of driver loop runs.
// Without it the executor logs nothing.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *executorConfig) error {
		if l == nil {
			return errors.New("coop: logger must not be nil")
		}
		c.logger = l
		return nil
	})
}

func (x optionFunc) applyOption(c *executorConfig) error {
	return x(c)
}
