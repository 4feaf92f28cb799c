// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"code.hybscloud.com/coop"
)

func TestBlockOnReady(t *testing.T) {
	ex := newExecutor(t)
	if got := coop.BlockOn(ex, coop.Ready(5)); got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
	st := ex.Stats()
	if st.Polls != 1 || st.Parks != 0 {
		t.Fatalf("stats: got %+v, want 1 poll and 0 parks", st)
	}
}

func TestBlockOnParksUntilWoken(t *testing.T) {
	g := &gate{}
	p := newScriptParker(func(n int) bool {
		if n == 1 {
			g.Open()
		}
		return false
	})
	ex := newExecutor(t, coop.WithParker(p))
	coop.BlockOn[struct{}](ex, g)
	st := ex.Stats()
	if st.Polls != 2 || st.Parks != 1 || st.Spurious != 0 {
		t.Fatalf("stats: got %+v, want 2 polls, 1 park", st)
	}
}

func TestBlockOnSpuriousWake(t *testing.T) {
	g := &gate{}
	p := newScriptParker(func(n int) bool {
		if n <= 2 {
			return true
		}
		g.Open()
		return false
	})
	ex := newExecutor(t, coop.WithParker(p))
	coop.BlockOn[struct{}](ex, g)
	st := ex.Stats()
	if st.Polls != 2 || st.Parks != 3 || st.Spurious != 2 {
		t.Fatalf("stats: got %+v, want 2 polls, 3 parks, 2 spurious", st)
	}
}

func TestBlockOnClearsStaleWake(t *testing.T) {
	ex := newExecutor(t)
	ex.Waker().Wake()
	g := &gate{}
	p := 0
	root := coop.FutureFunc[struct{}](func(cx *coop.Context) (struct{}, bool) {
		p++
		if cx.Waker().TestAndClear() {
			t.Fatal("stale wake visible to the root")
		}
		if p == 1 {
			g.Open()
		}
		return g.Poll(cx)
	})
	coop.BlockOn[struct{}](ex, root)
}

func TestExecutorInUse(t *testing.T) {
	ex := newExecutor(t)
	if _, err := coop.New(); !errors.Is(err, coop.ErrExecutorInUse) {
		t.Fatalf("second New: got %v, want ErrExecutorInUse", err)
	}
	if err := ex.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := ex.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	again, err := coop.New(coop.WithParker(coop.NewChanParker()))
	if err != nil {
		t.Fatalf("New after Close: %v", err)
	}
	again.Close()
}

func TestBlockOnClosedExecutor(t *testing.T) {
	ex := newExecutor(t)
	ex.Close()
	expectPanic(t, "coop: executor is closed", func() {
		coop.BlockOn(ex, coop.Ready(1))
	})
}

func TestBlockOnReentrant(t *testing.T) {
	ex := newExecutor(t)
	root := coop.FutureFunc[int](func(*coop.Context) (int, bool) {
		return coop.BlockOn(ex, coop.Ready(1)), true
	})
	expectPanic(t, "coop: BlockOn re-entered while a run is active", func() {
		coop.BlockOn(ex, root)
	})
	if got := coop.BlockOn(ex, coop.Ready(2)); got != 2 {
		t.Fatalf("after re-entry: got %d, want 2", got)
	}
}

func TestWakerClearedOffLoop(t *testing.T) {
	ex := newExecutor(t)
	var r any
	root := coop.FutureFunc[struct{}](func(cx *coop.Context) (struct{}, bool) {
		done := make(chan any, 1)
		go func() {
			defer func() { done <- recover() }()
			cx.Waker().TestAndClear()
		}()
		r = <-done
		return struct{}{}, true
	})
	coop.BlockOn[struct{}](ex, root)
	if r != "coop: waker cleared outside the driver loop" {
		t.Fatalf("panic: got %v", r)
	}
	// Idle: any goroutine may clear.
	ex.Waker().Wake()
	if !ex.Waker().TestAndClear() {
		t.Fatal("idle TestAndClear lost the wake")
	}
}

func TestOptionsRejectNil(t *testing.T) {
	if _, err := coop.New(coop.WithParker(nil)); err == nil {
		t.Fatal("WithParker(nil) accepted")
	}
	if _, err := coop.New(coop.WithLogger(nil)); err == nil {
		t.Fatal("WithLogger(nil) accepted")
	}
	// Rejected options must not leave the executor claimed.
	newExecutor(t)
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ex := newExecutor(t, coop.WithLogger(logger))
	coop.BlockOn(ex, coop.PendingOnce(coop.Ready(1)))
	out := buf.String()
	for _, want := range []string{"run started", "run finished", "polls=2", "parks=1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log %q missing %q", out, want)
		}
	}
}

func TestSpawnRejected(t *testing.T) {
	_, cx := newCx()
	if err := cx.Spawn(coop.Ready(struct{}{})); !errors.Is(err, coop.ErrNoSpawn) {
		t.Fatalf("got %v, want ErrNoSpawn", err)
	}
}

func TestSpinParker(t *testing.T) {
	g := &gate{}
	ex := newExecutor(t, coop.WithParker(&coop.SpinParker{}))
	go g.Open()
	coop.BlockOn[struct{}](ex, g)
	if ex.Stats().Polls < 1 {
		t.Fatal("root never polled")
	}
}

func TestDefaultParker(t *testing.T) {
	ex, err := coop.New()
	if err != nil {
		t.Fatal(err)
	}
	defer ex.Close()
	g := &gate{}
	go g.Open()
	coop.BlockOn[struct{}](ex, g)
}

func TestStatusString(t *testing.T) {
	for st, want := range map[coop.Status]string{coop.Pending: "Pending", coop.Produced: "Produced", coop.Ended: "Ended"} {
		if st.String() != want {
			t.Fatalf("got %q, want %q", st.String(), want)
		}
	}
}
