// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package workpool provides a fixed size pool of goroutines that executes
// submitted jobs and hands back a Future per job, so callers can fork a batch
// of work and join on it.
package workpool

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// ErrPoolStopped is reported by futures of jobs that were never run because the pool stopped
var ErrPoolStopped = errors.New("ErrPoolStopped")

// ErrJobPanicked is reported by futures of jobs that panicked
var ErrJobPanicked = errors.New("ErrJobPanicked")

// Future is a completion handle for a submitted job.
type Future struct {
	done chan struct{}
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func completedFuture(err error) *Future {
	f := newFuture()
	f.err = err
	close(f.done)
	return f
}

// Done returns a channel that is closed once the job has finished or was dropped.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the job has finished and returns its error, if any.
func (f *Future) Wait() error {
	<-f.done
	return f.err
}

// Err returns the job's error. Only meaningful after Done is closed.
func (f *Future) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}

type job struct {
	fn     func()
	future *Future
}

func (j job) run() {
	defer close(j.future.done)
	defer func() {
		if r := recover(); r != nil {
			j.future.err = fmt.Errorf("%w: %v", ErrJobPanicked, r)
		}
	}()

	j.fn()
}

func (j job) drop() {
	j.future.err = ErrPoolStopped
	close(j.future.done)
}

// Pool is a pool of goroutines executing jobs from a shared queue.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	workers int
	queue   chan job

	// done signals workers to stop.
	done chan struct{}
	wg   sync.WaitGroup

	// submitMutex keeps Stop from closing done while a Submit is in progress
	submitMutex sync.RWMutex
	running     atomic.Bool
	drain       atomic.Bool
}

// New creates a pool with the specified number of workers and starts them.
// If workers is 0 or negative, GOMAXPROCS is used.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &Pool{
		workers: workers,
		queue:   make(chan job, queueSize),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}

	log.WithField("workers", workers).Debug("Worker pool started")
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		// stop takes precedence over queued work
		select {
		case <-p.done:
			p.finishQueue()
			return
		default:
		}

		select {
		case <-p.done:
			p.finishQueue()
			return
		case j := <-p.queue:
			j.run()
		}
	}
}

// finishQueue runs or drops whatever is still queued, depending on how the
// pool was stopped.
func (p *Pool) finishQueue() {
	drain := p.drain.Load()
	for {
		select {
		case j := <-p.queue:
			if drain {
				j.run()
			} else {
				j.drop()
			}
		default:
			return
		}
	}
}

// Submit queues fn for execution and returns its completion handle. If the
// pool is stopped, fn is not run and the returned future is already complete
// with ErrPoolStopped. May block while the queue is full.
func (p *Pool) Submit(fn func()) *Future {
	if fn == nil {
		return completedFuture(nil)
	}

	p.submitMutex.RLock()
	defer p.submitMutex.RUnlock()

	if !p.running.Load() {
		return completedFuture(ErrPoolStopped)
	}

	j := job{fn: fn, future: newFuture()}
	select {
	case p.queue <- j:
	case <-p.done:
		j.drop()
	}
	return j.future
}

// Stop stops accepting jobs and waits for the workers to exit. Jobs already
// running always complete. Queued jobs are run when drain is true and dropped
// otherwise. Stop is safe to call multiple times.
func (p *Pool) Stop(drain bool) {
	if !p.running.CompareAndSwap(true, false) {
		return
	}

	p.drain.Store(drain)

	p.submitMutex.Lock()
	close(p.done)
	p.submitMutex.Unlock()

	p.wg.Wait()
	p.finishQueue()

	log.WithField("drain", drain).Debug("Worker pool stopped")
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}

// QueuedWork returns the number of jobs waiting for a worker.
func (p *Pool) QueuedWork() int {
	return len(p.queue)
}
