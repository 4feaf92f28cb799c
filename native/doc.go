// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package native runs coop drivers on a hosted operating system.
//
// Host peripherals are file descriptors and filesystem events. Each driver
// owns a watcher goroutine that plays the interrupt handler: it blocks in
// the kernel on behalf of the driver loop and signals the registered Waker
// when the peripheral becomes ready. The driver loop itself never blocks
// in a system call.
//
//	in, _ := native.Stdin()
//	out, _ := native.Stdout()
//	defer in.Close()
//	defer out.Close()
//	err := coop.BlockOn(ex, coopio.WriteAll(out, []byte("hi\n")))
package native
