// Package schedule contains cancellable periodic tasks
package schedule

import (
	"sync"
	"sync/atomic"
	"time"
)

// Task is a periodic task that can be stopped
type Task interface {
	// Stop cancels the task, no new run is started once Stop returns. Calling Stop more than
	// once is a no-op
	Stop()
}

// Scheduler runs functions on a fixed interval
type Scheduler interface {
	Every(interval time.Duration, fn func()) Task
}

// Ticker is a Scheduler backed by time.Ticker
type Ticker struct{}

// NewTicker returns a scheduler that uses the wall clock
func NewTicker() *Ticker {
	return &Ticker{}
}

type tickerTask struct {
	done    chan struct{}
	once    sync.Once
	stopped atomic.Bool
}

// Every starts a goroutine that calls fn every interval until the task is stopped
func (t *Ticker) Every(interval time.Duration, fn func()) Task {
	task := &tickerTask{
		done: make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-task.done:
				return
			case <-ticker.C:
				if task.stopped.Load() {
					return
				}
				fn()
			}
		}
	}()

	return task
}

func (t *tickerTask) Stop() {
	t.once.Do(func() {
		t.stopped.Store(true)
		close(t.done)
	})
}
