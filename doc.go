// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package coop provides a cooperative, poll-driven execution substrate for
// single-threaded targets that must sleep between external events.
//
// A computation is a [Future]: a value with a single Poll method that either
// completes with a result or reports that it is not ready yet. Leaf futures
// wait on hardware conditions (a timer compare, a UART byte, a GPIO edge) and
// register interest by storing the [Waker] carried by the [Context]. Larger
// computations are built from leaves with continuation-passing combinators.
//
// # Architecture
//
//   - Notification: [Waker] is a single-slot, edge-triggered flag. [Waker.Wake] is safe from interrupt context; [Waker.TestAndClear] belongs to the driver loop.
//   - Wait primitive: a [Parker] parks the CPU until woken ([SpinParker], [ChanParker], the Linux eventfd parker, and the TinyGo Cortex-M wfe/sev parker).
//   - Driver loop: [Executor] owns the Waker; [BlockOn] drives exactly one root Future to completion, parking between notifications.
//   - Sequences: [Stream] produces items over time, [Sink] accepts them, and [Forward] pumps one into the other with at most one item in flight.
//
// # API Topologies
//
//   - Futures: [Ready], [Lazy], [PollFunc], [PendingOnce], [Never].
//   - Combinators: [Then], [Map], [Select], [Join], [Timeout].
//   - Streams: [StreamFunc], [FromSlice], [Filter], [FilterMap], [First], [Next], [Take].
//   - Effects: [Async] and [AsyncExpr] run [code.hybscloud.com/kont] computations that perform [Await]; [AsyncStream] turns performed [Yield] operations into stream items.
//   - Drivers: [WakerSlot] holds the Waker for interrupt handlers; [Queue] is a lock-free SPSC channel from interrupt context into the loop.
//
// # Example
//
//	ex, err := coop.New()
//	if err != nil {
//		return err
//	}
//	defer ex.Close()
//	v := coop.BlockOn(ex, coop.Map(coop.Ready(20), func(n int) int { return n + 22 }))
//	// v == 42, completed in a single poll without parking
package coop
