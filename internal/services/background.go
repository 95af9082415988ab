package services

import (
	"context"
	"fmt"
	"log"
	"sync"
)

type taskResult struct {
	name string
	err  error
}

// Runner supervises background tasks so their failures are observed rather
// than lost. Tasks run with a fresh background context: they must outlive
// the request that spawned them.
type Runner struct {
	mu      sync.Mutex
	wg      sync.WaitGroup
	results chan taskResult
	done    chan struct{}
	closed  bool
}

func NewRunner() *Runner {
	r := &Runner{
		results: make(chan taskResult, 16),
		done:    make(chan struct{}),
	}
	go r.supervise()
	return r
}

func (r *Runner) supervise() {
	defer close(r.done)
	for res := range r.results {
		if res.err != nil {
			log.Printf("[background] task=%s failed: %v", res.name, res.err)
			continue
		}
		log.Printf("[background] task=%s completed", res.name)
	}
}

// Go launches fn in a supervised goroutine. Panics are recovered and
// reported as task failures.
func (r *Runner) Go(name string, fn func(ctx context.Context) error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		log.Printf("[background] task=%s rejected: runner closed", name)
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		var err error
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					err = fmt.Errorf("panic: %v", rec)
				}
			}()
			err = fn(context.Background())
		}()
		r.results <- taskResult{name: name, err: err}
	}()
}

// Close waits for in-flight tasks to finish and stops the supervisor.
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.wg.Wait()
	close(r.results)
	<-r.done
}
