// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !tinygo

package native

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/coop"
	"code.hybscloud.com/iox"
	"github.com/fsnotify/fsnotify"
)

// Edge is one change event on a watched path.
type Edge struct {
	Name string
	Op   fsnotify.Op
}

// Edges is a Stream of filesystem change events, the hosted stand-in for
// GPIO edge interrupts.
//
// Events are queued by a watcher goroutine into a bounded FIFO. Edges that
// arrive while the FIFO is full are dropped and counted, as a level
// interrupt would coalesce them. The stream ends after Close, or after the
// first watcher error, which Err reports.
type Edges struct {
	w       *fsnotify.Watcher
	q       *coop.Queue[Edge]
	dropped atomix.Uint64
	err     atomix.Pointer[error]
}

// DefaultEdgeCapacity is the FIFO size of [WatchEdges].
const DefaultEdgeCapacity = 64

// WatchEdges starts watching paths.
func WatchEdges(paths ...string) (*Edges, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		if err := w.Add(p); err != nil {
			w.Close()
			return nil, err
		}
	}
	e := &Edges{w: w, q: coop.NewQueue[Edge](DefaultEdgeCapacity)}
	go e.loop()
	return e, nil
}

func (e *Edges) loop() {
	defer e.q.Close()
	for {
		select {
		case ev, ok := <-e.w.Events:
			if !ok {
				return
			}
			if err := e.q.Push(Edge{Name: ev.Name, Op: ev.Op}); iox.IsWouldBlock(err) {
				e.dropped.AddRelaxed(1)
			}
		case err, ok := <-e.w.Errors:
			if !ok {
				return
			}
			e.err.CompareAndSwapAcqRel(nil, &err)
			return
		}
	}
}

// PollNext implements coop.Stream.
func (e *Edges) PollNext(cx *coop.Context) (Edge, coop.Status) {
	return e.q.PollNext(cx)
}

// Dropped returns the number of edges lost to a full FIFO.
func (e *Edges) Dropped() uint64 { return e.dropped.LoadAcquire() }

// Err returns the watcher error that ended the stream, if any.
func (e *Edges) Err() error {
	if p := e.err.LoadAcquire(); p != nil {
		return *p
	}
	return nil
}

// Close stops watching. Queued edges are still delivered before the stream
// ends.
func (e *Edges) Close() error {
	return e.w.Close()
}
