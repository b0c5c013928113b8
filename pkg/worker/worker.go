// Package worker provides a pausable background worker: a single goroutine
// that waits for work, runs one iteration at a time and can be paused,
// resumed and stopped from any goroutine.
package worker

import (
	"context"
	"sync"
	"time"
)

// Priority is an informational scheduling hint. Go exposes no goroutine
// priorities, so the hint is carried for callers that can act on it (or
// ignore it) rather than enforced here.
type Priority int

const (
	PriorityBelowNormal Priority = iota - 1
	PriorityNormal
	PriorityAboveNormal
)

func (p Priority) String() string {
	switch p {
	case PriorityBelowNormal:
		return "below-normal"
	case PriorityAboveNormal:
		return "above-normal"
	default:
		return "normal"
	}
}

// Runnable is the unit of work driven by a Worker.
//
// HasWork is consulted before every iteration; while it returns false the
// worker suspends without busy-waiting until Wake is called. DoWork runs one
// iteration; the context is cancelled when the worker stops, which aborts
// any Sleep in progress. A non-nil error from DoWork ends the loop. AfterRun
// runs exactly once after the loop exits.
type Runnable interface {
	HasWork() bool
	DoWork(ctx context.Context) error
	AfterRun()
	Priority() Priority
}

// Worker drives a Runnable on a dedicated goroutine.
// All methods are safe for concurrent use.
type Worker struct {
	runnable Runnable

	mu      sync.Mutex
	cond    *sync.Cond
	paused  bool
	started bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(runnable Runnable) *Worker {
	if runnable == nil {
		panic("worker: runnable is required")
	}
	w := &Worker{runnable: runnable}
	w.cond = sync.NewCond(&w.mu)
	w.ctx, w.cancel = context.WithCancel(context.Background())
	return w
}

// Start spawns the worker goroutine. Subsequent calls are no-ops.
func (w *Worker) Start() {
	w.mu.Lock()
	if w.started || w.ctx.Err() != nil {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.mu.Unlock()

	w.wg.Add(1)
	go w.run()
}

// Wake re-evaluates HasWork if the worker is suspended waiting for work.
// A Wake concurrent with the worker deciding to suspend is never lost:
// the predicate is checked under the same mutex the broadcast takes.
func (w *Worker) Wake() {
	w.mu.Lock()
	w.cond.Broadcast()
	w.mu.Unlock()
}

// Pause suspends the loop before its next iteration. An iteration already
// in progress is not aborted. Pending work is kept.
func (w *Worker) Pause() {
	w.mu.Lock()
	w.paused = true
	w.mu.Unlock()
}

// Resume re-enables the wait-for-work step after a Pause.
func (w *Worker) Resume() {
	w.mu.Lock()
	w.paused = false
	w.cond.Broadcast()
	w.mu.Unlock()
}

// Paused reports whether the worker is currently paused.
func (w *Worker) Paused() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.paused
}

// Stop cancels the worker and blocks until the loop has exited and AfterRun
// has completed. Cancellation interrupts a wait or a Sleep immediately, not
// after the current frame budget. Idempotent. On a worker that was never
// started there is no loop to exit, so AfterRun does not run.
func (w *Worker) Stop() {
	w.cancel()
	w.mu.Lock()
	w.cond.Broadcast()
	w.mu.Unlock()
	w.wg.Wait()
}

func (w *Worker) run() {
	defer w.wg.Done()
	defer w.runnable.AfterRun()

	for {
		w.mu.Lock()
		for (w.paused || !w.runnable.HasWork()) && w.ctx.Err() == nil {
			w.cond.Wait()
		}
		w.mu.Unlock()

		if w.ctx.Err() != nil {
			return
		}
		if err := w.runnable.DoWork(w.ctx); err != nil {
			return
		}
	}
}

// Sleep blocks for d or until ctx is cancelled, whichever comes first.
// It reports whether the full duration elapsed. Non-positive durations
// return immediately.
func Sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
