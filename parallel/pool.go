// Package parallel runs independent tasks on a fixed set of goroutines.
package parallel

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

type Task func() error

// Pool runs tasks on its workers and collects their errors. With a single
// worker tasks run synchronously inside Do.
type Pool struct {
	wg      sync.WaitGroup
	work    chan Task
	workers int
	close   func()

	mu   sync.Mutex
	errs []error

	done, failed atomic.Uint64
}

func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		workers: numWorkers,
		close:   func() {},
	}
	if numWorkers == 1 {
		return p
	}

	p.work = make(chan Task, numWorkers)
	for range numWorkers {
		p.wg.Go(func() {
			for t := range p.work {
				p.run(t)
			}
		})
	}
	p.close = sync.OnceFunc(func() { close(p.work) })
	return p
}

func (p *Pool) Workers() int {
	return p.workers
}

// Do queues t, blocking while every worker is busy and the queue is full.
func (p *Pool) Do(t Task) {
	if p.work == nil {
		p.run(t)
		return
	}
	p.work <- t
}

func (p *Pool) run(t Task) {
	if err := t(); err != nil {
		p.failed.Add(1)
		p.mu.Lock()
		p.errs = append(p.errs, err)
		p.mu.Unlock()
		return
	}
	p.done.Add(1)
}

// Wait stops accepting tasks, waits for the queued ones to finish and
// returns their errors joined. The pool cannot be reused afterwards.
func (p *Pool) Wait() error {
	p.close()
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	return errors.Join(p.errs...)
}

// Done and Failed count finished tasks by outcome.
func (p *Pool) Done() uint64   { return p.done.Load() }
func (p *Pool) Failed() uint64 { return p.failed.Load() }
