// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package timer

import (
	"sync"
	"time"
)

// Host is the hosted compare unit. Compares fire on a runtime timer
// goroutine, which plays the interrupt handler.
type Host struct {
	mu sync.Mutex
	t  *time.Timer
}

// NewHost returns a disarmed Host unit.
func NewHost() *Host {
	return &Host{}
}

// Arm implements [Hardware].
func (h *Host) Arm(d time.Duration, fire func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.t != nil {
		h.t.Stop()
	}
	h.t = time.AfterFunc(d, fire)
}

// Disarm implements [Hardware].
func (h *Host) Disarm() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.t != nil {
		h.t.Stop()
		h.t = nil
	}
}
