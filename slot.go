// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

import "code.hybscloud.com/atomix"

// WakerSlot is the registration point a driver keeps for its interrupt
// handler. Leaf futures Register the Waker of the current poll; the
// interrupt handler calls Wake.
//
// The zero value is an empty slot. Wake on an empty slot does nothing.
type WakerSlot struct {
	p atomix.Pointer[Waker]
}

// Register stores w. Registering the same Waker again is a single load.
func (s *WakerSlot) Register(w *Waker) {
	if s.p.LoadAcquire() != w {
		s.p.StoreRelease(w)
	}
}

// Wake wakes the registered Waker, if any. Safe from interrupt context.
func (s *WakerSlot) Wake() {
	if w := s.p.LoadAcquire(); w != nil {
		w.Wake()
	}
}

// Clear empties the slot.
func (s *WakerSlot) Clear() {
	s.p.StoreRelease(nil)
}
